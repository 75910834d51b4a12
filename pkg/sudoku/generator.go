// Package sudoku puzzle generation pipeline.
//
// Generation has two halves: fill an empty board into a complete valid
// solution (the hybrid solver with randomized value ordering does this),
// then carve givens back out in three stages while preserving uniqueness:
//
//  1. symmetric random removal with uniqueness re-checks, taking cheap
//     pairs off the board quickly;
//  2. difficulty-guided removal that skips cells the forced-cells registry
//     protects for the target difficulty, refreshing the registry as the
//     board thins;
//  3. a final greedy sweep toward the difficulty's clue target.
//
// Every removal is validated with the engine's solution-counting probe
// (limit 2). The carve budget is best-effort: running out of time yields a
// valid, unique puzzle with more clues than targeted, not a failure.
package sudoku

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Generator produces puzzles with guaranteed-unique solutions at a target
// difficulty. Not safe for concurrent use; batch generation should create
// one Generator per goroutine.
type Generator struct {
	rng    *rand.Rand
	logger *slog.Logger
	budget time.Duration
	seed   int64
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed fixes the random stream, making generation reproducible.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger attaches a structured logger for carve diagnostics.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// WithCarveBudget overrides the wall-clock budget for the removal stages.
func WithCarveBudget(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.budget = d }
}

// NewGenerator creates a generator seeded from the clock unless WithSeed
// is given.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		seed:   time.Now().UnixNano(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	return g
}

// targetGivens returns the clue target for a difficulty, scaled to board
// area and floored at the dimension.
func targetGivens(size int, d Difficulty) int {
	area := size * size
	var pct int
	switch d {
	case Easy:
		pct = 50
	case Medium:
		pct = 42
	case Hard:
		pct = 34
	default:
		pct = 28
	}
	target := area * pct / 100
	if target < size {
		target = size
	}
	return target
}

// Generate produces one puzzle of the given size and target difficulty.
func (g *Generator) Generate(ctx context.Context, size int, d Difficulty) (*Puzzle, error) {
	if _, err := subgridSizeFor(size); err != nil {
		return nil, err
	}
	budget := g.budget
	if budget == 0 {
		budget = time.Duration(size) * time.Second
	}
	deadline := time.Now().Add(budget)
	var total Stats

	// Fill a complete random solution.
	board, err := NewGridBoard(size)
	if err != nil {
		return nil, err
	}
	filler, err := NewSolver(board, WithRand(g.rng))
	if err != nil {
		return nil, err
	}
	fillRes, err := filler.Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("fill solution: %w", err)
	}
	total.Add(fillRes.Stats)
	solution := board.Clone()
	puzzle := board.Clone()

	target := targetGivens(size, d)
	g.logger.Debug("filled solution",
		slog.Int("size", size),
		slog.String("difficulty", d.String()),
		slog.Int("target_givens", target))

	positions := g.shuffledPositions(size)
	expired := func() bool { return ctx.Err() != nil || time.Now().After(deadline) }

	// Stage 1: symmetric random removal down to an intermediate count.
	stage1Target := size * size * 55 / 100
	if stage1Target < target {
		stage1Target = target
	}
	for _, pos := range positions {
		if expired() || puzzle.Givens() <= stage1Target {
			break
		}
		mirror := Position{Row: size - 1 - pos.Row, Col: size - 1 - pos.Col}
		if puzzle.Get(pos.Row, pos.Col) == 0 || puzzle.Get(mirror.Row, mirror.Col) == 0 {
			continue
		}
		saved := [2]int{puzzle.Get(pos.Row, pos.Col), puzzle.Get(mirror.Row, mirror.Col)}
		puzzle.Set(pos.Row, pos.Col, 0)
		puzzle.Set(mirror.Row, mirror.Col, 0)
		unique, err := g.isUnique(ctx, puzzle, &total)
		if err != nil || !unique {
			puzzle.Set(pos.Row, pos.Col, saved[0])
			puzzle.Set(mirror.Row, mirror.Col, saved[1])
			if err != nil {
				return nil, err
			}
		}
	}

	// Stage 2: difficulty-guided removal honoring registry protection.
	registry, err := g.solveForRegistry(ctx, puzzle, &total)
	if err != nil {
		return nil, err
	}
	removedSinceRefresh := 0
	for _, pos := range positions {
		if expired() || puzzle.Givens() <= target {
			break
		}
		if puzzle.Get(pos.Row, pos.Col) == 0 {
			continue
		}
		if registry != nil && registry.ShouldProtect(pos, d) {
			continue
		}
		saved := puzzle.Get(pos.Row, pos.Col)
		puzzle.Set(pos.Row, pos.Col, 0)
		unique, err := g.isUnique(ctx, puzzle, &total)
		if err != nil {
			return nil, err
		}
		if !unique {
			puzzle.Set(pos.Row, pos.Col, saved)
			continue
		}
		removedSinceRefresh++
		if removedSinceRefresh >= 8 {
			removedSinceRefresh = 0
			registry, err = g.solveForRegistry(ctx, puzzle, &total)
			if err != nil {
				return nil, err
			}
		}
	}

	// Stage 3: greedy final sweep toward the clue target.
	for _, pos := range positions {
		if expired() || puzzle.Givens() <= target {
			break
		}
		if puzzle.Get(pos.Row, pos.Col) == 0 {
			continue
		}
		saved := puzzle.Get(pos.Row, pos.Col)
		puzzle.Set(pos.Row, pos.Col, 0)
		unique, err := g.isUnique(ctx, puzzle, &total)
		if err != nil {
			return nil, err
		}
		if !unique {
			puzzle.Set(pos.Row, pos.Col, saved)
		}
	}

	if puzzle.Givens() > target {
		g.logger.Warn("carve budget exhausted before clue target",
			slog.Int("givens", puzzle.Givens()),
			slog.Int("target", target))
	}

	// Final solve of the carved puzzle for the calibration registry.
	final, err := g.solveForRegistry(ctx, puzzle, &total)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{
		ID:         uuid.New(),
		Seed:       g.seed,
		Size:       size,
		Difficulty: d,
		Givens:     puzzle,
		Solution:   solution,
		Forced:     final,
		Stats:      total,
	}
	g.logger.Info("generated puzzle",
		slog.String("id", p.ID.String()),
		slog.Int("givens", puzzle.Givens()),
		slog.Int("rating", p.Rating()))
	return p, nil
}

func (g *Generator) shuffledPositions(size int) []Position {
	positions := make([]Position, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			positions = append(positions, Position{Row: r, Col: c})
		}
	}
	g.rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})
	return positions
}

// isUnique probes the board with the solution-counting search, limit 2.
func (g *Generator) isUnique(ctx context.Context, b *GridBoard, total *Stats) (bool, error) {
	s, err := NewSolver(b)
	if err != nil {
		return false, err
	}
	n, err := s.CountSolutions(ctx, 2)
	total.Add(s.Stats())
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// solveForRegistry solves a clone of the puzzle and returns the
// forced-cells registry describing how each empty cell is deduced.
func (g *Generator) solveForRegistry(ctx context.Context, b *GridBoard, total *Stats) (*ForcedCellsRegistry, error) {
	clone := b.Clone()
	s, err := NewSolver(clone)
	if err != nil {
		return nil, err
	}
	res, err := s.Solve(ctx)
	total.Add(s.Stats())
	if err != nil {
		return nil, fmt.Errorf("registry solve: %w", err)
	}
	return res.Forced, nil
}
