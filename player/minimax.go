package player

import (
	"math"

	"patchwork/game"
)

const (
	// winValue dominates any reachable score difference so a certain win
	// is never traded for a better-looking horizon evaluation.
	winValue = 10000

	tableSize = 1 << 18
)

const (
	flagExact = iota
	flagLower
	flagUpper
)

type tableEntry struct {
	hash   uint64
	depth  int8
	flag   uint8
	value  int
	action game.Action
}

// Minimax searches with iterative-deepening alpha-beta over the exact
// game tree, cut off by a static evaluation at the horizon. Values are
// neutral (positive favors player 1); the mover recorded in each state
// decides who maximizes, so consecutive moves by the same player search
// correctly.
type Minimax struct {
	maxDepth int
	table    []tableEntry
	nodes    int
}

func NewMinimax(depth int) *Minimax {
	if depth < 1 {
		panic("player: minimax needs a depth of at least 1")
	}
	return &Minimax{
		maxDepth: depth,
		table:    make([]tableEntry, tableSize),
	}
}

func (p *Minimax) Name() string { return "minimax" }

// Nodes is the number of states visited by the last FindAction call.
func (p *Minimax) Nodes() int { return p.nodes }

func (p *Minimax) FindAction(state game.State, _ ...game.Action) (game.Action, error) {
	if state.IsTerminal() {
		return game.Action{}, ErrGameOver
	}

	p.nodes = 0
	best := state.LegalActions()[0]
	for depth := 1; depth <= p.maxDepth; depth++ {
		p.search(state, depth, math.MinInt32, math.MaxInt32)
		if entry := &p.table[state.Hash()&(tableSize-1)]; entry.hash == state.Hash() {
			best = entry.action
		}
	}
	return best, nil
}

func (p *Minimax) search(state game.State, depth, alpha, beta int) int {
	p.nodes++

	if state.IsTerminal() {
		outcome := state.Outcome()
		if outcome.Winner == 0 {
			return winValue + outcome.Score()
		}
		return -winValue + outcome.Score()
	}
	if depth == 0 {
		if gs, ok := state.(*game.GameState); ok {
			return gs.Evaluation()
		}
		return 0
	}

	hash := state.Hash()
	entry := &p.table[hash&(tableSize-1)]
	var tableAction game.Action
	haveTableAction := false
	if entry.hash == hash {
		if int(entry.depth) >= depth {
			switch entry.flag {
			case flagExact:
				return entry.value
			case flagLower:
				if entry.value > alpha {
					alpha = entry.value
				}
			case flagUpper:
				if entry.value < beta {
					beta = entry.value
				}
			}
			if alpha >= beta {
				return entry.value
			}
		}
		tableAction = entry.action
		haveTableAction = true
	}

	actions := state.LegalActions()
	if haveTableAction {
		for i, action := range actions {
			if action == tableAction {
				actions[0], actions[i] = actions[i], actions[0]
				break
			}
		}
	}

	maximizing := state.Player1ToMove()
	alphaOrig, betaOrig := alpha, beta
	best := actions[0]
	var value int
	if maximizing {
		value = math.MinInt32
		for _, action := range actions {
			if v := p.search(state.Apply(action), depth-1, alpha, beta); v > value {
				value, best = v, action
			}
			if value > alpha {
				alpha = value
			}
			if alpha >= beta {
				break
			}
		}
	} else {
		value = math.MaxInt32
		for _, action := range actions {
			if v := p.search(state.Apply(action), depth-1, alpha, beta); v < value {
				value, best = v, action
			}
			if value < beta {
				beta = value
			}
			if alpha >= beta {
				break
			}
		}
	}

	flag := uint8(flagExact)
	if value <= alphaOrig {
		flag = flagUpper
	} else if value >= betaOrig {
		flag = flagLower
	}
	*entry = tableEntry{
		hash:   hash,
		depth:  int8(depth),
		flag:   flag,
		value:  value,
		action: best,
	}
	return value
}
