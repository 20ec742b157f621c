package searcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"patchwork/game"
)

// mockState is a hand-built game tree node. Successors are wired
// explicitly so tests control every branch and outcome.
type mockState struct {
	player1  bool
	terminal bool
	outcome  game.Termination
	hash     uint64
	actions  []game.Action
	next     map[game.Action]*mockState
}

func (m *mockState) Player1ToMove() bool { return m.player1 }

func (m *mockState) LegalActions() []game.Action { return m.actions }

func (m *mockState) Apply(action game.Action) game.State {
	s, ok := m.next[action]
	if !ok {
		panic(fmt.Sprintf("mock state has no successor for %v", action))
	}
	return s
}

func (m *mockState) IsTerminal() bool { return m.terminal }

func (m *mockState) Outcome() game.Termination {
	if !m.terminal {
		panic("outcome of a non-terminal mock state")
	}
	return m.outcome
}

func (m *mockState) Hash() uint64 { return m.hash }

// mockAction gives tests distinct comparable actions.
func mockAction(id int) game.Action {
	return game.Action{Kind: game.ActionPlacePatch, PatchID: uint8(id)}
}

// mockWin is a terminal state won by player 1 or player 2.
func mockWin(player1 bool) *mockState {
	winner := 0
	score1, score2 := 10, 5
	if !player1 {
		winner = 1
		score1, score2 = 5, 10
	}
	return &mockState{
		terminal: true,
		outcome:  game.Termination{Winner: winner, Score1: score1, Score2: score2},
	}
}

// mockBranch is a non-terminal state whose actions lead to the given
// successors in order.
func mockBranch(player1 bool, successors ...*mockState) *mockState {
	m := &mockState{
		player1: player1,
		next:    map[game.Action]*mockState{},
	}
	for i, s := range successors {
		a := mockAction(i)
		m.actions = append(m.actions, a)
		m.next[a] = s
	}
	return m
}

func TestNodeViewPerspective(t *testing.T) {
	t.Run("flipping neutral statistics for player 2", func(t *testing.T) {
		v := NodeView{Visits: 4, Wins: 2, ScoreSum: 6, MaxScore: 3, MinScore: -1}

		require.Equal(t, 2, v.WinsFor(true), "Stored wins should be player 1's wins")
		require.Equal(t, -2, v.WinsFor(false), "Player 2's wins should be the negated tally")
		require.Equal(t, 6.0, v.ScoreSumFor(true))
		require.Equal(t, -6.0, v.ScoreSumFor(false))
		require.Equal(t, 1.5, v.MeanFor(true), "Mean should be score sum over visits")
		require.Equal(t, -1.5, v.MeanFor(false))
	})

	t.Run("score range before any backpropagation", func(t *testing.T) {
		v := NodeView{}
		require.Equal(t, 0.0, v.ScoreRange(), "Unvisited views should report a zero range, not Inf-Inf")
	})

	t.Run("mean of an unvisited view", func(t *testing.T) {
		v := NodeView{}
		require.Equal(t, 0.0, v.MeanFor(true), "Unvisited views should not divide by zero")
	})
}
