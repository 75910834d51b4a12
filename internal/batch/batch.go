// Package batch runs bounded-concurrency puzzle generation. Each job owns
// an independent Generator and therefore an independent engine instance;
// nothing mutable is shared between goroutines, which is exactly what the
// engine's one-search-one-triple ownership model permits.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/kanoku/pkg/sudoku"
)

// Job produces a single puzzle. Implementations must build their own
// Generator; sharing one across jobs races on its random stream.
type Job func(ctx context.Context, index int) (*sudoku.Puzzle, error)

// Generate runs n jobs with at most workers in flight and returns the
// puzzles in job order. The first failing job cancels the rest. workers
// <= 0 means one worker per CPU.
func Generate(ctx context.Context, n, workers int, job Job) ([]*sudoku.Puzzle, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	puzzles := make([]*sudoku.Puzzle, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			p, err := job(ctx, i)
			if err != nil {
				return err
			}
			puzzles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return puzzles, nil
}
