package searcher

import "math"

// ExplorationConstant is the default UCT exploration constant.
var ExplorationConstant = math.Sqrt2

// TreePolicy picks which child of a fully expanded node the selection
// phase descends into. It sees only statistics, never the nodes, and must
// be deterministic: same views in, same index out.
//
// Every implementation gives a child with zero visits infinite priority
// (first such child wins) so that each expanded child is visited at least
// once before value comparisons mean anything. Remaining ties break to
// the lowest index.
type TreePolicy interface {
	Select(parent NodeView, children []NodeView) int
}

// UCTPolicy is plain UCT over win counts:
//
//	w/n + c * sqrt(ln N / n)
//
// with w the child's wins from the parent mover's perspective.
type UCTPolicy struct {
	C float64
}

func NewUCTPolicy() UCTPolicy {
	return UCTPolicy{C: ExplorationConstant}
}

func (p UCTPolicy) Select(parent NodeView, children []NodeView) int {
	if len(children) == 0 {
		panic("searcher: tree policy asked to select among no children")
	}

	logN := math.Log(float64(parent.Visits))
	best := 0
	bestScore := math.Inf(-1)
	for i, child := range children {
		if child.Visits == 0 {
			return i
		}
		n := float64(child.Visits)
		exploit := float64(child.WinsFor(parent.Player1)) / n
		explore := p.C * math.Sqrt(logN/n)
		if score := exploit + explore; score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// ScoredUCTPolicy replaces win rate with mean score and scales the
// exploration term by the score range the parent has observed, so
// evaluators on arbitrary scales (score difference, learned values) stay
// commensurate with exploration:
//
//	sum/n + c * |max-min| * sqrt(ln N / n)
type ScoredUCTPolicy struct {
	C float64
}

func NewScoredUCTPolicy() ScoredUCTPolicy {
	return ScoredUCTPolicy{C: ExplorationConstant}
}

func (p ScoredUCTPolicy) Select(parent NodeView, children []NodeView) int {
	if len(children) == 0 {
		panic("searcher: tree policy asked to select among no children")
	}

	logN := math.Log(float64(parent.Visits))
	scoreRange := math.Abs(parent.ScoreRange())
	best := 0
	bestScore := math.Inf(-1)
	for i, child := range children {
		if child.Visits == 0 {
			return i
		}
		n := float64(child.Visits)
		exploit := child.ScoreSumFor(parent.Player1) / n
		explore := p.C * scoreRange * math.Sqrt(logN/n)
		if score := exploit + explore; score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// PUCTPolicy is the AlphaZero-style selection rule with uniform priors
// (no policy network in this engine, only a value network):
//
//	q + c * p * sqrt(N) / (1 + n)   with p = 1/|children|
//
// q is the child's mean value from the parent mover's perspective,
// normalized into [0,1] over the parent's observed range so the constant
// keeps its usual meaning regardless of the evaluator's scale.
type PUCTPolicy struct {
	C float64
}

func NewPUCTPolicy() PUCTPolicy {
	return PUCTPolicy{C: 1.5}
}

func (p PUCTPolicy) Select(parent NodeView, children []NodeView) int {
	if len(children) == 0 {
		panic("searcher: tree policy asked to select among no children")
	}

	prior := 1.0 / float64(len(children))
	sqrtN := math.Sqrt(float64(parent.Visits))
	scoreRange := math.Abs(parent.ScoreRange())
	low := parent.MinScore
	if !parent.Player1 {
		low = -parent.MaxScore
	}

	best := 0
	bestScore := math.Inf(-1)
	for i, child := range children {
		if child.Visits == 0 {
			return i
		}
		q := child.MeanFor(parent.Player1)
		if scoreRange > 0 {
			q = (q - low) / scoreRange
		}
		u := p.C * prior * sqrtN / (1 + float64(child.Visits))
		if score := q + u; score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
