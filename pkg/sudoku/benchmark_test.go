package sudoku

import (
	"context"
	"testing"
)

func BenchmarkEnforceConsistency(b *testing.B) {
	b.Run("Empty-9x9", func(b *testing.B) {
		board, _ := NewGridBoard(9)
		for i := 0; i < b.N; i++ {
			net, err := NewConstraintNetwork(board)
			if err != nil {
				b.Fatal(err)
			}
			prop := NewPropagator(net)
			if !prop.EnforceConsistency() {
				b.Fatal("propagation failed")
			}
		}
	})

	b.Run("Classic-9x9", func(b *testing.B) {
		board, _ := ParseGrid(classicPuzzle)
		for i := 0; i < b.N; i++ {
			net, err := NewConstraintNetwork(board)
			if err != nil {
				b.Fatal(err)
			}
			prop := NewPropagator(net)
			if !prop.EnforceConsistency() {
				b.Fatal("propagation failed")
			}
		}
	})
}

func BenchmarkSolve(b *testing.B) {
	ctx := context.Background()

	b.Run("Classic-9x9", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			board, _ := ParseGrid(classicPuzzle)
			s, err := NewSolver(board)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := s.Solve(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Empty-9x9", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			board, _ := NewGridBoard(9)
			s, err := NewSolver(board)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := s.Solve(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkCountSolutions(b *testing.B) {
	for i := 0; i < b.N; i++ {
		board, _ := ParseGrid(classicPuzzle)
		s, err := NewSolver(board)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := s.CountSolutions(context.Background(), 2); err != nil {
			b.Fatal(err)
		}
	}
}
