// Command kanoku is the front end for the Kanoku puzzle engine: it parses
// arguments, renders grids as text, and calls into pkg/sudoku for all
// solving and generation work.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/kanoku/internal/batch"
	"github.com/gitrdm/kanoku/pkg/sudoku"
)

var (
	flagVerbose bool

	flagSize       int
	flagDifficulty string
	flagSeed       int64
	flagCount      int
	flagWorkers    int

	flagBudget time.Duration
)

func main() {
	root := &cobra.Command{
		Use:           "kanoku",
		Short:         "Generate and solve generalized Sudoku puzzles",
		Version:       sudoku.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd(), newSolveCmd(), newCountCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseDifficulty(s string) (sudoku.Difficulty, error) {
	switch s {
	case "easy":
		return sudoku.Easy, nil
	case "medium":
		return sudoku.Medium, nil
	case "hard":
		return sudoku.Hard, nil
	case "expert":
		return sudoku.Expert, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (easy|medium|hard|expert)", s)
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzles with a unique solution at a target difficulty",
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := parseDifficulty(flagDifficulty)
			if err != nil {
				return err
			}
			logger := newLogger()
			baseSeed := flagSeed
			if baseSeed == 0 {
				baseSeed = time.Now().UnixNano()
			}
			puzzles, err := batch.Generate(cmd.Context(), flagCount, flagWorkers,
				func(ctx context.Context, i int) (*sudoku.Puzzle, error) {
					gen := sudoku.NewGenerator(
						sudoku.WithLogger(logger),
						sudoku.WithSeed(baseSeed+int64(i)),
					)
					return gen.Generate(ctx, flagSize, diff)
				})
			if err != nil {
				return err
			}
			for _, p := range puzzles {
				fmt.Printf("# id=%s difficulty=%s rating=%d givens=%d\n",
					p.ID, p.Difficulty, p.Rating(), p.Givens.Givens())
				fmt.Println(p.Givens)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&flagSize, "size", "s", 9, "board dimension (perfect square, 4..25)")
	cmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "medium", "easy|medium|hard|expert")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (0 = from clock)")
	cmd.Flags().IntVarP(&flagCount, "count", "n", 1, "number of puzzles")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel workers (0 = NumCPU)")
	return cmd
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <grid>",
		Short: "Solve a puzzle given as a compact cell string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := sudoku.ParseGrid(args[0])
			if err != nil {
				return err
			}
			opts := []sudoku.SolverOption{}
			if flagBudget > 0 {
				opts = append(opts, sudoku.WithBudget(flagBudget))
			}
			solver, err := sudoku.NewSolver(board, opts...)
			if err != nil {
				return err
			}
			res, err := solver.Solve(cmd.Context())
			if err != nil {
				st := solver.Stats()
				return fmt.Errorf("%w (nodes=%d backtracks=%d elapsed=%s)",
					err, st.Nodes, st.Backtracks, st.Elapsed)
			}
			fmt.Println(board)
			st := res.Stats
			fmt.Printf("# nodes=%d backtracks=%d ac3=%d eliminated=%d max_depth=%d forced=%d elapsed=%s\n",
				st.Nodes, st.Backtracks, st.AC3Calls, st.ValuesEliminated,
				st.MaxDepth, res.Forced.Len(), st.Elapsed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&flagBudget, "budget", 0, "wall-clock budget (0 = size default)")
	return cmd
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <grid>",
		Short: "Count solutions of a puzzle (up to 2, for uniqueness checks)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := sudoku.ParseGrid(args[0])
			if err != nil {
				return err
			}
			solver, err := sudoku.NewSolver(board)
			if err != nil {
				return err
			}
			n, err := solver.CountSolutions(cmd.Context(), 2)
			if err != nil {
				return err
			}
			switch n {
			case 0:
				fmt.Println("no solutions")
			case 1:
				fmt.Println("unique solution")
			default:
				fmt.Println("multiple solutions")
			}
			return nil
		},
	}
}
