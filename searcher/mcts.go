package searcher

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"patchwork/game"
)

type Option func(m *MCTS)

// MCTS drives Monte Carlo tree search over one or more independent
// SearchTrees. With several goroutines it runs root parallelism: every
// goroutine owns a private tree with its own seed, and the root
// statistics are merged once all trees stop. No locks touch the playout
// loop.
type MCTS struct {
	goroutines int
	duration   time.Duration
	iterations int
	policy     TreePolicy
	eval       Evaluator
	seed       uint64
	reuse      bool
	metrics    MetricsCollector

	// tree survives across calls when reuse is on (single goroutine
	// only; merged trees cannot be carried forward).
	tree     *SearchTree
	nextSeed uint64
}

// WithDuration stops each search after roughly this long. Either a
// duration or an iteration count must be set.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithIterations stops each search after this many playouts in total,
// split across the goroutines.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithTreePolicy replaces the default scored UCT selection rule.
func WithTreePolicy(policy TreePolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.policy = policy
		}
	}
}

// WithEvaluator replaces the default win/loss rollout evaluator.
func WithEvaluator(eval Evaluator) Option {
	return func(m *MCTS) {
		if eval != nil {
			m.eval = eval
		}
	}
}

// WithSeed makes every search reproducible. Without it the seed comes
// from the wall clock.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithTreeReuse keeps the search tree between moves and rebases it onto
// the played line instead of starting cold. Only effective with a single
// goroutine.
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines < 1 {
		panic("searcher: need at least one goroutine")
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		policy:     NewScoredUCTPolicy(),
		eval:       WinLossEvaluator{},
		seed:       uint64(time.Now().UnixNano()),
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("searcher: must specify search iterations or duration")
	}
	if m.reuse && m.goroutines > 1 {
		log.Warn().Msgf("tree reuse disabled: %d goroutines run independent trees", m.goroutines)
		m.reuse = false
	}
	m.nextSeed = m.seed
	return m
}

// SearchStats reports one FindAction call: the aggregate counters plus
// the merged per-action root statistics.
type SearchStats struct {
	MoveMetrics
	Actions []ActionStat
}

var (
	// ErrTerminalState is returned when asked for an action in a
	// finished game.
	ErrTerminalState = errors.New("searcher: no action to find in a terminal state")
	// ErrNoLegalActions is returned when the game offers nothing to
	// play, which only a broken game implementation produces.
	ErrNoLegalActions = errors.New("searcher: no legal actions in a non-terminal state")
)

// FindAction searches from state and returns the robustness child of the
// merged root statistics. The played actions are the opponent moves made
// since the previous FindAction call, in order (the own move was advanced
// then); they drive tree reuse and are ignored when reuse is off.
func (m *MCTS) FindAction(state game.State, played ...game.Action) (game.Action, SearchStats, error) {
	if state.IsTerminal() {
		return game.Action{}, SearchStats{}, ErrTerminalState
	}
	if len(state.LegalActions()) == 0 {
		return game.Action{}, SearchStats{}, ErrNoLegalActions
	}

	m.metrics.Start()
	trees := m.buildTrees(state, played)

	if m.iterations > 0 {
		m.iterate(trees)
	} else {
		m.countdown(trees)
	}

	for _, t := range trees {
		m.metrics.AddTree(t.Nodes(), t.MaxDepth())
	}

	stats := SearchStats{Actions: mergeRootStats(trees)}
	action, ok := bestAction(stats.Actions)
	if !ok {
		// Zero playouts completed (degenerate budget). Fall back to the
		// first legal action rather than returning garbage.
		action = state.LegalActions()[0]
	}
	stats.MoveMetrics = m.metrics.Complete()

	if m.reuse {
		m.tree = trees[0]
		if !m.tree.AdvanceRoot(action) {
			m.tree = nil
		}
	}
	return action, stats, nil
}

// buildTrees prepares one tree per goroutine, reusing the retained tree
// when it can be rebased onto the played line and matches state.
func (m *MCTS) buildTrees(state game.State, played []game.Action) []*SearchTree {
	trees := make([]*SearchTree, m.goroutines)

	if m.reuse && m.tree != nil {
		if reused := m.rebase(state, played); reused != nil {
			trees[0] = reused
			m.metrics.ReusedTree()
			return trees
		}
	}

	for i := range trees {
		trees[i] = NewSearchTree(state, m.policy, m.eval, m.nextSeed)
		m.nextSeed++
	}
	return trees
}

// rebase walks the retained tree along the opponent moves played since
// our last move (our own move was already advanced at the end of the
// previous call) and validates the resulting root against state. Any
// mismatch discards the tree.
func (m *MCTS) rebase(state game.State, played []game.Action) *SearchTree {
	tree := m.tree
	m.tree = nil

	for _, action := range played {
		if !tree.AdvanceRoot(action) {
			return nil
		}
	}
	hash, ok := tree.RootHash()
	if !ok {
		return nil
	}
	if hash != state.Hash() {
		log.Warn().Msgf("retained tree root hash %d does not match state hash %d", hash, state.Hash())
		return nil
	}
	return tree
}

// iterate splits the playout budget across the trees and runs them to
// completion, one goroutine per tree.
func (m *MCTS) iterate(trees []*SearchTree) {
	share := m.iterations / len(trees)
	extra := m.iterations % len(trees)

	var wg sync.WaitGroup
	for i, t := range trees {
		budget := share
		if i < extra {
			budget++
		}
		wg.Add(1)
		go func(t *SearchTree, budget int) {
			defer wg.Done()
			for j := 0; j < budget; j++ {
				t.Playout()
				m.metrics.AddPlayout()
			}
		}(t, budget)
	}
	wg.Wait()
}

// countdown runs every tree until the deadline passes.
func (m *MCTS) countdown(trees []*SearchTree) {
	done := make(chan struct{})

	var wg sync.WaitGroup
	for _, t := range trees {
		wg.Add(1)
		go func(t *SearchTree) {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					t.Playout()
					m.metrics.AddPlayout()
				}
			}
		}(t)
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// mergeRootStats combines the root children of all trees by action,
// summing visits and visit-weighting the means.
func mergeRootStats(trees []*SearchTree) []ActionStat {
	order := []game.Action{}
	merged := map[game.Action]ActionStat{}
	for _, t := range trees {
		for _, s := range t.RootStats() {
			acc, ok := merged[s.Action]
			if !ok {
				order = append(order, s.Action)
			}
			total := acc.Visits + s.Visits
			if total > 0 {
				acc.Mean = (acc.Mean*float64(acc.Visits) + s.Mean*float64(s.Visits)) / float64(total)
			}
			acc.Action = s.Action
			acc.Visits = total
			merged[s.Action] = acc
		}
	}

	stats := make([]ActionStat, 0, len(order))
	for _, a := range order {
		stats = append(stats, merged[a])
	}
	return stats
}

func bestAction(stats []ActionStat) (game.Action, bool) {
	if len(stats) == 0 {
		return game.Action{}, false
	}
	best := stats[0]
	for _, s := range stats[1:] {
		if s.Visits > best.Visits || (s.Visits == best.Visits && s.Mean > best.Mean) {
			best = s
		}
	}
	return best.Action, true
}
