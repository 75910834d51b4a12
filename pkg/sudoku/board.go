// Package sudoku board abstraction. The engine consumes any grid through
// the Board interface; GridBoard is the slice-backed implementation used by
// the generator, the CLI, and tests.
package sudoku

import (
	"fmt"
	"math"
	"strings"
)

// Board is the grid collaborator the engine reads a snapshot from and, on
// success, writes a fully filled grid back to. Cell values are 1..N with 0
// meaning empty.
type Board interface {
	// Size returns the board dimension N.
	Size() int
	// SubgridSize returns the box dimension sqrt(N).
	SubgridSize() int
	// Get returns the value at (r, c), 0 if empty.
	Get(r, c int) int
	// Set writes v at (r, c). v == 0 clears the cell.
	Set(r, c, v int)
}

// subgridSizeFor validates size and returns sqrt(size).
func subgridSizeFor(size int) (int, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return 0, fmt.Errorf("%w: got %d", ErrBoardSize, size)
	}
	box := int(math.Sqrt(float64(size)))
	if box*box != size {
		return 0, fmt.Errorf("%w: got %d", ErrBoardSize, size)
	}
	return box, nil
}

// GridBoard is a dense row-major Board implementation.
type GridBoard struct {
	size  int
	box   int
	cells []int
}

// NewGridBoard creates an empty board of the given dimension.
func NewGridBoard(size int) (*GridBoard, error) {
	box, err := subgridSizeFor(size)
	if err != nil {
		return nil, err
	}
	return &GridBoard{size: size, box: box, cells: make([]int, size*size)}, nil
}

// ParseGrid builds a board from a compact cell string of length N*N in
// row-major order. '0' and '.' mean empty; '1'..'9' are themselves; for
// boards larger than 9x9, 'A'..'P' encode 10..25 (case-insensitive).
// Whitespace is ignored.
func ParseGrid(s string) (*GridBoard, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == '|' {
			return -1
		}
		return r
	}, s)
	size := int(math.Sqrt(float64(len(compact))))
	if size*size != len(compact) {
		return nil, fmt.Errorf("%w: %d cells is not a square grid", ErrBoardSize, len(compact))
	}
	b, err := NewGridBoard(size)
	if err != nil {
		return nil, err
	}
	for i, r := range compact {
		v, err := parseCell(r)
		if err != nil {
			return nil, err
		}
		if v > size {
			return nil, fmt.Errorf("%w: %q on a %dx%d board", ErrInvalidValue, r, size, size)
		}
		b.cells[i] = v
	}
	return b, nil
}

func parseCell(r rune) (int, error) {
	switch {
	case r == '.' || r == '0':
		return 0, nil
	case r >= '1' && r <= '9':
		return int(r - '0'), nil
	case r >= 'A' && r <= 'P':
		return int(r-'A') + 10, nil
	case r >= 'a' && r <= 'p':
		return int(r-'a') + 10, nil
	}
	return 0, fmt.Errorf("%w: cell %q", ErrInvalidValue, r)
}

// Size returns the board dimension.
func (b *GridBoard) Size() int { return b.size }

// SubgridSize returns the box dimension.
func (b *GridBoard) SubgridSize() int { return b.box }

// Get returns the value at (r, c).
func (b *GridBoard) Get(r, c int) int { return b.cells[r*b.size+c] }

// Set writes v at (r, c).
func (b *GridBoard) Set(r, c, v int) { b.cells[r*b.size+c] = v }

// Empty returns the number of unfilled cells.
func (b *GridBoard) Empty() int {
	n := 0
	for _, v := range b.cells {
		if v == 0 {
			n++
		}
	}
	return n
}

// Givens returns the number of filled cells.
func (b *GridBoard) Givens() int { return b.size*b.size - b.Empty() }

// Clone returns an independent copy of the board.
func (b *GridBoard) Clone() *GridBoard {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &GridBoard{size: b.size, box: b.box, cells: cells}
}

// Compact renders the board as a single ParseGrid-compatible line.
func (b *GridBoard) Compact() string {
	var sb strings.Builder
	for _, v := range b.cells {
		sb.WriteByte(cellRune(v))
	}
	return sb.String()
}

func cellRune(v int) byte {
	switch {
	case v == 0:
		return '.'
	case v <= 9:
		return byte('0' + v)
	default:
		return byte('A' + v - 10)
	}
}

// String renders the board as rows of cells with box separators.
func (b *GridBoard) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		if r > 0 && r%b.box == 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.size; c++ {
			if c > 0 {
				if c%b.box == 0 {
					sb.WriteString("  ")
				} else {
					sb.WriteByte(' ')
				}
			}
			sb.WriteByte(cellRune(b.Get(r, c)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
