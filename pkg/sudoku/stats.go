package sudoku

import "time"

// Stats captures the observable cost of one solve or count attempt.
type Stats struct {
	// Backtracks is the number of candidate assignments that were undone.
	Backtracks int
	// AC3Calls counts propagation runs (full and targeted).
	AC3Calls int
	// Revisions counts individual arc revisions across all runs.
	Revisions int
	// CellsAssigned counts tentative assignments made during search.
	CellsAssigned int
	// ValuesEliminated counts candidate values removed by propagation.
	ValuesEliminated int
	// MaxDepth is the deepest recursion level reached.
	MaxDepth int
	// Nodes is the number of search frames entered.
	Nodes int
	// Elapsed is the wall-clock duration of the attempt.
	Elapsed time.Duration
}

// Add accumulates other into s. Elapsed is summed; MaxDepth takes the
// maximum. Used when a pipeline performs several engine calls.
func (s *Stats) Add(other Stats) {
	s.Backtracks += other.Backtracks
	s.AC3Calls += other.AC3Calls
	s.Revisions += other.Revisions
	s.CellsAssigned += other.CellsAssigned
	s.ValuesEliminated += other.ValuesEliminated
	s.Nodes += other.Nodes
	s.Elapsed += other.Elapsed
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
}
