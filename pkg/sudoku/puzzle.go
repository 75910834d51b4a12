package sudoku

import "github.com/google/uuid"

// Puzzle is the output of the generation pipeline: the carved givens, the
// unique solution they admit, and the forced-cells registry from solving
// the final puzzle, which grounds the difficulty rating.
type Puzzle struct {
	ID         uuid.UUID
	Seed       int64
	Size       int
	Difficulty Difficulty
	Givens     *GridBoard
	Solution   *GridBoard
	Forced     *ForcedCellsRegistry
	Stats      Stats
}

// Rating returns the calibrated 1-10 difficulty estimate derived from the
// forced-cells registry.
func (p *Puzzle) Rating() int {
	if p.Forced == nil {
		return 1
	}
	return p.Forced.Rating()
}
