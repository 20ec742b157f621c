package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// State is the game interface the searcher and players operate on. States
// are immutable: Apply always returns a fresh copy.
type State interface {
	// Player1ToMove reports whose turn it is. Patchwork turns do not
	// alternate strictly: the token furthest behind moves, so the same
	// player may move several times in a row.
	Player1ToMove() bool
	// LegalActions returns the ordered list of legal actions. It is
	// never empty for a non-terminal state.
	LegalActions() []Action
	// Apply plays the action and returns the successor state without
	// mutating the receiver.
	Apply(Action) State
	IsTerminal() bool
	// Outcome panics when called on a non-terminal state.
	Outcome() Termination
	// Hash is a cheap fingerprint for transposition tables.
	Hash() uint64
}

// PlayerState is one player's token position, button balance and board.
type PlayerState struct {
	Position int
	Buttons  int
	Board    QuiltBoard
}

// GameState is the full Patchwork game state.
type GameState struct {
	// Market holds the remaining patch ids in circle order; the first
	// three are purchasable.
	Market  []uint8
	Players [2]PlayerState
	// Current is 0 for player 1, 1 for player 2.
	Current int
	// SpecialPatches is the bitmask of time-board spaces that still hold
	// a leather patch.
	SpecialPatches uint64
	// PendingSpecial forces the mover's next action to be a leather-patch
	// placement.
	PendingSpecial bool
	// FirstAtEnd is the player who reached the last space first, -1
	// while nobody has.
	FirstAtEnd int
	// BonusTaken is set once the full-board bonus has been claimed.
	BonusTaken bool
}

// NewGameState deals a fresh game with the market shuffled by seed.
func NewGameState(seed uint64) *GameState {
	rng := rand.New(rand.NewSource(seed))

	market := make([]uint8, 0, NumPatches)
	for id := uint8(1); id < NumPatches; id++ {
		market = append(market, id)
	}
	rng.Shuffle(len(market), func(i, j int) {
		market[i], market[j] = market[j], market[i]
	})
	// The neutral token starts next to the 1x2 patch, so it is bought last.
	market = append(market, StartingPatchID)

	return &GameState{
		Market: market,
		Players: [2]PlayerState{
			{Buttons: 5},
			{Buttons: 5},
		},
		SpecialPatches: initialSpecialPatches(),
		FirstAtEnd:     -1,
	}
}

func (gs *GameState) Copy() *GameState {
	marketCopy := make([]uint8, len(gs.Market))
	copy(marketCopy, gs.Market)

	next := *gs
	next.Market = marketCopy
	return &next
}

func (gs *GameState) Player1ToMove() bool {
	return gs.Current == 0
}

func (gs *GameState) CurrentPlayer() *PlayerState {
	return &gs.Players[gs.Current]
}

func (gs *GameState) OtherPlayer() *PlayerState {
	return &gs.Players[1-gs.Current]
}

func (gs *GameState) IsTerminal() bool {
	return gs.Players[0].Position >= MaxPosition && gs.Players[1].Position >= MaxPosition
}

// Score is the player's current score: buttons plus board score. The
// full-board bonus is already part of the button balance.
func (gs *GameState) Score(player int) int {
	return gs.Players[player].Buttons + gs.Players[player].Board.Score()
}

func (gs *GameState) Outcome() Termination {
	if !gs.IsTerminal() {
		panic("game: Outcome called on a non-terminal state")
	}

	score1 := gs.Score(0)
	score2 := gs.Score(1)

	winner := gs.FirstAtEnd // equal scores: first to the end wins
	if score1 > score2 {
		winner = 0
	} else if score2 > score1 {
		winner = 1
	}

	return Termination{Winner: winner, Score1: score1, Score2: score2}
}

func (gs *GameState) LegalActions() []Action {
	if gs.PendingSpecial {
		return gs.specialPatchActions()
	}

	// Walking is always possible; buying is limited to the first three
	// market patches the mover can afford and fit.
	actions := []Action{Advance()}

	mover := gs.CurrentPlayer()
	for index := 0; index < 3 && index < len(gs.Market); index++ {
		id := gs.Market[index]
		patch := PatchByID(id)
		if patch.ButtonCost > mover.Buttons {
			continue
		}
		if Tiles-mover.Board.TilesFilled() < patch.Size() {
			continue
		}
		for placement, p := range PlacementsOf(id) {
			if mover.Board.Fits(p) {
				actions = append(actions, Action{
					Kind:        ActionPlacePatch,
					PatchID:     id,
					MarketIndex: uint8(index),
					Placement:   uint16(placement),
				})
			}
		}
	}
	return actions
}

func (gs *GameState) specialPatchActions() []Action {
	board := gs.CurrentPlayer().Board
	actions := make([]Action, 0, Tiles-board.TilesFilled())
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if !board.Tiles.Test(row*Columns + col) {
				actions = append(actions, Action{
					Kind: ActionPlaceSpecial,
					Row:  uint8(row),
					Col:  uint8(col),
				})
			}
		}
	}
	return actions
}

// Apply plays the action on a copy of the state. Illegal actions are
// contract violations and panic.
func (gs *GameState) Apply(action Action) State {
	next := gs.Copy()

	if action.Kind == ActionPlaceSpecial {
		if !gs.PendingSpecial {
			panic("game: leather-patch placement without a pending leather patch")
		}
		mover := next.CurrentPlayer()
		mover.Board = mover.Board.PlaceSingle(int(action.Row), int(action.Col))
		next.claimBonusIfFull()
		next.PendingSpecial = false
		// The walk that earned the patch may have left the mover behind,
		// in which case they move again.
		if mover.Position > next.OtherPlayer().Position {
			next.switchPlayer()
		}
		return next
	}
	if gs.PendingSpecial {
		panic("game: a leather-patch placement is pending")
	}

	oldPosition := next.CurrentPlayer().Position
	otherPosition := next.OtherPlayer().Position
	var timeCost int

	walking := false
	switch action.Kind {
	case ActionAdvance:
		// One space past the opponent; the buttons are paid out below,
		// after the position is clamped to the board end.
		timeCost = otherPosition - oldPosition + 1
		walking = true
	case ActionPlacePatch:
		patch := PatchByID(action.PatchID)
		if next.Market[action.MarketIndex] != action.PatchID {
			panic(fmt.Sprintf("game: market slot %d does not hold patch %d", action.MarketIndex, action.PatchID))
		}

		// The neutral token moves to the bought patch: everything up to
		// and including it rotates behind the rest, then it is removed.
		bought := int(action.MarketIndex)
		market := make([]uint8, 0, len(next.Market)-1)
		market = append(market, next.Market[bought+1:]...)
		market = append(market, next.Market[:bought]...)
		next.Market = market

		mover := next.CurrentPlayer()
		mover.Board = mover.Board.Place(PlacementsOf(action.PatchID)[action.Placement], patch.ButtonIncome)
		mover.Buttons -= patch.ButtonCost
		next.claimBonusIfFull()

		timeCost = patch.TimeCost
	default:
		panic(fmt.Sprintf("game: unknown action kind %d", action.Kind))
	}

	newPosition := oldPosition + timeCost
	if newPosition > MaxPosition {
		newPosition = MaxPosition
	}
	next.CurrentPlayer().Position = newPosition
	if walking {
		// One button per space actually moved.
		next.CurrentPlayer().Buttons += newPosition - oldPosition
	}
	if newPosition >= MaxPosition && next.FirstAtEnd < 0 {
		next.FirstAtEnd = next.Current
	}

	// Button income for every income space crossed (several are possible
	// on a long walk).
	triggers := buttonIncomeTriggersIn(oldPosition+1, newPosition)
	next.CurrentPlayer().Buttons += triggers * next.CurrentPlayer().Board.ButtonIncome

	// Crossing a leather-patch space forces an immediate placement turn
	// for the mover, unless their board is already full.
	if space := specialPatchIn(next.SpecialPatches, oldPosition+1, newPosition); space >= 0 {
		next.SpecialPatches &^= 1 << uint(space)
		if !next.CurrentPlayer().Board.IsFull() {
			next.PendingSpecial = true
			return next
		}
		// A full board has nowhere for the leather patch; it is discarded.
	}

	if newPosition > otherPosition {
		next.switchPlayer()
	}
	return next
}

func (gs *GameState) switchPlayer() {
	gs.Current = 1 - gs.Current
}

func (gs *GameState) claimBonusIfFull() {
	if !gs.BonusTaken && gs.CurrentPlayer().Board.IsFull() {
		gs.CurrentPlayer().Buttons += FullBoardBonus
		gs.BonusTaken = true
	}
}

// Evaluation is a cheap static estimate of the final score difference,
// positive when player 1 stands better: current scores plus the board
// income each player will still collect.
func (gs *GameState) Evaluation() int {
	value := 0
	for i := range gs.Players {
		p := &gs.Players[i]
		side := p.Buttons + p.Board.Score() + p.Board.ButtonIncome*IncomeTriggersAhead(p.Position)
		if i == 0 {
			value += side
		} else {
			value -= side
		}
	}
	return value
}

func (gs *GameState) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)

	h.Write(gs.Market)
	for i := range gs.Players {
		p := &gs.Players[i]
		binary.LittleEndian.PutUint64(buf, uint64(p.Position))
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, uint64(int64(p.Buttons)))
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, p.Board.Tiles.Lo)
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, p.Board.Tiles.Hi)
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, uint64(p.Board.ButtonIncome))
		h.Write(buf)
	}
	flags := uint64(gs.Current)
	if gs.PendingSpecial {
		flags |= 1 << 1
	}
	if gs.BonusTaken {
		flags |= 1 << 2
	}
	flags |= uint64(gs.FirstAtEnd+1) << 3
	binary.LittleEndian.PutUint64(buf, flags)
	h.Write(buf)
	binary.LittleEndian.PutUint64(buf, gs.SpecialPatches)
	h.Write(buf)

	return h.Sum64()
}
