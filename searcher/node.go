package searcher

import "patchwork/game"

// node is one search-tree vertex. All statistics are stored from the
// neutral perspective: positive favors player 1, regardless of whose turn
// it is anywhere in the tree. Perspective is flipped at read time via
// NodeView, never at write time, so backpropagation applies the same
// update to every ancestor.
type node struct {
	id     NodeID
	state  game.State
	parent NodeID
	// action is the action that produced this node from its parent;
	// meaningless for the root (parent == noNode).
	action   game.Action
	children []NodeID
	// expandable holds the legal actions not yet grown into children.
	// children plus expandable always cover exactly the legal actions of
	// state.
	expandable []game.Action
	terminal   bool

	// Extremes and sum of the neutral values seen in this subtree, for
	// score-normalizing policies.
	maxScore float64
	minScore float64
	scoreSum float64
	// wins is a signed tally: +1 per backpropagated value favoring
	// player 1, -1 per value favoring player 2.
	wins   int
	visits int
}

func (n *node) fullyExpanded() bool {
	return len(n.expandable) == 0
}

// view snapshots the statistics a tree policy is allowed to see.
func (n *node) view() NodeView {
	return NodeView{
		Visits:   n.visits,
		Wins:     n.wins,
		ScoreSum: n.scoreSum,
		MaxScore: n.maxScore,
		MinScore: n.minScore,
		Player1:  n.state.Player1ToMove(),
	}
}

// NodeView exposes a node's statistics to tree policies without handing
// out the node itself. Wins, ScoreSum and the extremes are neutral
// (positive favors player 1); the *For accessors flip them into a chosen
// player's perspective.
type NodeView struct {
	Visits   int
	Wins     int
	ScoreSum float64
	MaxScore float64
	MinScore float64
	// Player1 is true when player 1 is to move at this node.
	Player1 bool
}

func (v NodeView) WinsFor(player1 bool) int {
	if player1 {
		return v.Wins
	}
	return -v.Wins
}

func (v NodeView) ScoreSumFor(player1 bool) float64 {
	if player1 {
		return v.ScoreSum
	}
	return -v.ScoreSum
}

// ScoreRange is the width of the observed neutral value range, used to
// keep exploration commensurate with the evaluator's scale. Zero until
// the first backpropagation.
func (v NodeView) ScoreRange() float64 {
	if v.Visits == 0 {
		return 0
	}
	return v.MaxScore - v.MinScore
}

// MeanFor is the average backpropagated value from one player's
// perspective.
func (v NodeView) MeanFor(player1 bool) float64 {
	if v.Visits == 0 {
		return 0
	}
	return v.ScoreSumFor(player1) / float64(v.Visits)
}
