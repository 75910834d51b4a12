// Package sudoku hybrid solver (AC3HB).
//
// The solver orchestrates the constraint network, AC-3 propagation,
// heuristic selection, density cache, and forced-cells registry into a
// depth/time-bounded backtracking search:
//
//	Propagate -> CheckComplete / CheckDeadEnd -> SelectCell ->
//	TryCandidate -> Recurse / Backtrack
//
// with a shared timed-out/depth-exceeded abort signal checked on every
// transition. Small boards run one attempt with a generous fixed depth
// ceiling and a short timeout; large boards use a tighter per-attempt
// ceiling, a longer budget, and iterative deepening across growing caps.
//
// Search is single-threaded and synchronous. Every tentative change
// (assignment, propagation narrowing, density increment) has an exact
// inverse applied before the next alternative is tried; the undo trail in
// ConstraintNetwork makes the rollback exhaustive even though propagation
// touches cells far from the guessed one. Finding a solution within budget
// is not guaranteed on deeply constrained large boards; that surfaces as
// ErrTimedOut with diagnostic statistics, never as a hang.
package sudoku

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

type solverConfig struct {
	maxDepth  int
	depthStep int
	iterative bool
	budget    time.Duration
	strategy  SelectionStrategy
	weights   HeuristicWeights
	rng       *rand.Rand
}

// defaultConfig sizes depth and wall-clock budgets to the board dimension.
func defaultConfig(size int) solverConfig {
	cfg := solverConfig{strategy: SelectCombined, weights: DefaultWeights()}
	if size <= 9 {
		cfg.maxDepth = 2 * size * size
		cfg.budget = 2 * time.Second
	} else {
		cfg.maxDepth = 2 * size
		cfg.depthStep = 2 * size
		cfg.iterative = true
		cfg.budget = time.Duration(size) * 2 * time.Second
	}
	return cfg
}

// SolverOption configures a Solver.
type SolverOption func(*solverConfig)

// WithMaxDepth overrides the depth ceiling (initial ceiling when
// iterative deepening is active).
func WithMaxDepth(d int) SolverOption { return func(c *solverConfig) { c.maxDepth = d } }

// WithBudget overrides the wall-clock budget. Zero disables the budget.
func WithBudget(d time.Duration) SolverOption { return func(c *solverConfig) { c.budget = d } }

// WithIterativeDeepening enables restarting the search at successively
// larger depth ceilings, growing by step each round.
func WithIterativeDeepening(step int) SolverOption {
	return func(c *solverConfig) {
		c.iterative = true
		c.depthStep = step
	}
}

// WithStrategy selects the cell-selection heuristic.
func WithStrategy(s SelectionStrategy) SolverOption {
	return func(c *solverConfig) { c.strategy = s }
}

// WithWeights overrides the combined-score weights.
func WithWeights(w HeuristicWeights) SolverOption {
	return func(c *solverConfig) { c.weights = w }
}

// WithRand randomizes value-ordering ties, diversifying the solutions the
// search reaches first. Used by the generator to fill empty grids.
func WithRand(rng *rand.Rand) SolverOption { return func(c *solverConfig) { c.rng = rng } }

// Result is returned on a successful solve. Ownership of the registry
// transfers to the caller; the solver retains no reference across solves.
type Result struct {
	Forced *ForcedCellsRegistry
	Stats  Stats
}

// Solver runs bounded hybrid search over one board. A Solver is not safe
// for concurrent use; independent solves need independent Solver
// instances, which share nothing mutable.
type Solver struct {
	board Board
	cfg   solverConfig

	// per-attempt state, rebuilt by each attempt and exclusively owned
	net      *ConstraintNetwork
	cache    *SubgridDensityCache
	registry *ForcedCellsRegistry
	selector *Selector
	prop     *Propagator
	given    []bool
	guessed  map[int]bool

	ctx      context.Context
	deadline time.Time
	abortErr error
	polls    int
	depthHit bool
	counting bool
	found    int
	limit    int

	stats Stats
}

// NewSolver creates a solver for the board. The board is only read until
// a solve succeeds, at which point the completed grid is written back.
func NewSolver(b Board, opts ...SolverOption) (*Solver, error) {
	if _, err := subgridSizeFor(b.Size()); err != nil {
		return nil, err
	}
	cfg := defaultConfig(b.Size())
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Solver{board: b, cfg: cfg}, nil
}

// Stats returns the statistics of the most recent Solve or CountSolutions
// call, including failed ones.
func (s *Solver) Stats() Stats { return s.stats }

// Solve searches for a completion of the board. On success the board is
// fully filled in and the forced-cells registry plus statistics are
// returned. On failure the board is untouched and the error is
// ErrUnsolvable, ErrTimedOut, ErrDepthExceeded, or a context error;
// diagnostic statistics remain available through Stats.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	start := time.Now()
	s.beginRun(ctx)
	s.counting = false

	ceiling := s.cfg.maxDepth
	for {
		err := s.attempt(ceiling)
		if err == nil {
			s.writeBack()
			s.stats.Elapsed = time.Since(start)
			return &Result{Forced: s.registry, Stats: s.stats}, nil
		}
		if errors.Is(err, ErrDepthExceeded) && s.cfg.iterative && s.abortErr == nil {
			ceiling += s.cfg.depthStep
			continue
		}
		s.stats.Elapsed = time.Since(start)
		return nil, err
	}
}

// CountSolutions counts completions of the board, stopping once limit is
// reached (limit 2 is the uniqueness probe the removal pipeline uses).
// The board is never mutated and no registry is produced.
func (s *Solver) CountSolutions(ctx context.Context, limit int) (int, error) {
	start := time.Now()
	s.beginRun(ctx)
	s.counting = true
	s.found = 0
	s.limit = limit

	// Counting must be exhaustive, so the ceiling covers every cell and
	// iterative deepening is pointless.
	err := s.attempt(s.board.Size() * s.board.Size())
	s.stats.Elapsed = time.Since(start)
	switch {
	case err == nil, errors.Is(err, errCountReached), errors.Is(err, ErrUnsolvable):
		return s.found, nil
	default:
		return s.found, err
	}
}

func (s *Solver) beginRun(ctx context.Context) {
	s.ctx = ctx
	s.stats = Stats{}
	s.abortErr = nil
	s.polls = 0
	if s.cfg.budget > 0 {
		s.deadline = time.Now().Add(s.cfg.budget)
	} else {
		s.deadline = time.Time{}
	}
}

// attempt builds a fresh network/cache/registry triple and runs one
// bounded search over it. Returns nil on success, ErrUnsolvable on
// exhaustion, ErrDepthExceeded when every open branch hit the ceiling,
// or the terminal abort error.
func (s *Solver) attempt(ceiling int) error {
	net, err := NewConstraintNetwork(s.board)
	if err != nil {
		return err
	}
	size := s.board.Size()
	s.net = net
	s.cache = NewSubgridDensityCache(net)
	s.registry = NewForcedCellsRegistry()
	s.selector = NewSelector(s.cfg.strategy, s.cfg.weights, s.cache)
	s.prop = NewPropagator(net)
	s.prop.Stats = &s.stats
	s.prop.Abort = s.abortNow
	s.depthHit = false
	s.guessed = make(map[int]bool)

	s.given = make([]bool, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if s.board.Get(r, c) != 0 {
				s.given[r*size+c] = true
			} else if !s.counting && net.DomainSize(r, c) == 1 {
				// Collapsed by the construction pass's direct elimination.
				s.registry.Register(Position{Row: r, Col: c}, net.Domain(r, c).Value(), ForcedNakedSingle, 0)
			}
		}
	}

	err = s.search(0, ceiling)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errBranchFailed):
		if s.depthHit {
			return ErrDepthExceeded
		}
		return ErrUnsolvable
	default:
		return err
	}
}

// search is one frame of the state machine. Returns nil when the subtree
// below this frame completed the board, errBranchFailed for the expected
// branch-local outcomes (inconsistent or exhausted), and a terminal error
// once the shared abort signal fires.
func (s *Solver) search(depth, ceiling int) error {
	if err := s.checkAbort(); err != nil {
		return err
	}
	s.stats.Nodes++
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}

	// Propagate: full AC-3 plus hidden-single deduction to saturation.
	for {
		if !s.prop.EnforceConsistency() {
			if s.abortErr != nil {
				return s.abortErr
			}
			return errBranchFailed
		}
		s.classifyPropagated(depth)
		pos, v, ok := FindHiddenSingle(s.net)
		if !ok {
			break
		}
		s.net.AssignValue(pos.Row, pos.Col, v)
		if !s.counting {
			s.registry.Register(pos, v, ForcedHiddenSingle, depth)
		}
	}

	// CheckComplete.
	if s.net.Complete() {
		if s.counting {
			s.found++
			if s.found >= s.limit {
				return errCountReached
			}
			// Keep exploring sibling branches.
			return errBranchFailed
		}
		return nil
	}

	if depth >= ceiling {
		s.depthHit = true
		return errBranchFailed
	}

	// SelectCell.
	score, ok := s.selector.SelectCell(s.net)
	if !ok {
		return errBranchFailed
	}
	r, c := score.Pos.Row, score.Pos.Col

	// TryCandidate, least-constraining value first.
	for _, v := range OrderValues(s.net, r, c, s.cfg.rng) {
		if err := s.checkAbort(); err != nil {
			return err
		}
		mark := s.net.Snapshot()
		s.net.AssignValue(r, c, v)
		s.stats.CellsAssigned++
		s.cache.CellAssigned(r, c)
		// Keep the guess out of the Propagated sweep; it is classified as
		// Backtracked only if it survives.
		s.guessed[r*s.net.Size()+c] = true

		if s.prop.PropagateFrom(r, c) {
			err := s.search(depth+1, ceiling)
			if err == nil {
				if !s.counting {
					s.registry.RegisterBacktracked(score.Pos, v, depth)
				}
				return nil
			}
			if !errors.Is(err, errBranchFailed) {
				// Terminal abort: restore and fail fast, no further
				// candidate work.
				s.cache.CellUnassigned(r, c)
				s.net.UndoTo(mark)
				return err
			}
		} else if s.abortErr != nil {
			s.cache.CellUnassigned(r, c)
			s.net.UndoTo(mark)
			return s.abortErr
		}

		// Backtrack: exact inverse of the tentative work.
		delete(s.guessed, r*s.net.Size()+c)
		s.cache.CellUnassigned(r, c)
		s.net.UndoTo(mark)
		s.stats.Backtracks++
	}

	// Exhausted every candidate at this cell.
	return errBranchFailed
}

// classifyPropagated registers every cell that AC-3 saturation collapsed
// to a singleton. Cells already classified keep their first
// classification; givens are never registered.
func (s *Solver) classifyPropagated(depth int) {
	if s.counting {
		return
	}
	size := s.net.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			i := r*size + c
			if s.given[i] || s.guessed[i] {
				continue
			}
			d := s.net.Domain(r, c)
			if d.IsSingleton() {
				pos := Position{Row: r, Col: c}
				if !s.registry.IsRegistered(pos) {
					s.registry.Register(pos, d.Value(), ForcedPropagated, depth)
				}
			}
		}
	}
}

// writeBack copies the solved network into the board. Only called after a
// successful search, keeping failure all-or-nothing from the caller's
// point of view.
func (s *Solver) writeBack() {
	size := s.net.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			s.board.Set(r, c, s.net.Domain(r, c).Value())
		}
	}
}

// abortNow performs the real (unsampled) abort check and latches the
// terminal error.
func (s *Solver) abortNow() bool {
	if s.abortErr != nil {
		return true
	}
	if s.ctx != nil {
		if err := s.ctx.Err(); err != nil {
			s.abortErr = err
			return true
		}
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.abortErr = ErrTimedOut
		return true
	}
	return false
}

// checkAbort is the sampled poll used on frame transitions: cheap on most
// calls, with the full clock check every abortPollInterval transitions.
// The budget can be overshot by at most one sampling window.
func (s *Solver) checkAbort() error {
	if s.abortErr != nil {
		return s.abortErr
	}
	s.polls++
	if s.polls%abortPollInterval == 0 {
		s.abortNow()
	}
	return s.abortErr
}
