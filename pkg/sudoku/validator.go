// Package sudoku board validation: fast bitmask scans over rows, columns,
// and boxes. Used by the generator, the CLI, and tests to check engine
// output and user input.
package sudoku

// ValidateSolved reports whether every cell is filled and every row,
// column, and box contains each value 1..N exactly once.
func ValidateSolved(b Board) bool {
	size := b.Size()
	if _, err := subgridSizeFor(size); err != nil {
		return false
	}
	full := uint32(1<<uint(size)) - 1
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			v := b.Get(r, c)
			if v < 1 || v > size {
				return false
			}
		}
	}
	box := b.SubgridSize()
	for i := 0; i < size; i++ {
		var rowMask, colMask uint32
		for j := 0; j < size; j++ {
			rowMask |= 1 << uint(b.Get(i, j)-1)
			colMask |= 1 << uint(b.Get(j, i)-1)
		}
		if rowMask != full || colMask != full {
			return false
		}
	}
	for br := 0; br < size; br += box {
		for bc := 0; bc < size; bc += box {
			var mask uint32
			for dr := 0; dr < box; dr++ {
				for dc := 0; dc < box; dc++ {
					mask |= 1 << uint(b.Get(br+dr, bc+dc)-1)
				}
			}
			if mask != full {
				return false
			}
		}
	}
	return true
}

// FindConflicts returns the positions of filled cells that duplicate an
// earlier value in their row, column, or box. Empty cells are skipped, so
// it works on partial boards.
func FindConflicts(b Board) []Position {
	size := b.Size()
	box := b.SubgridSize()
	conflicts := make([]Position, 0, 8)
	flagged := make(map[Position]struct{})
	flag := func(p Position) {
		if _, ok := flagged[p]; !ok {
			flagged[p] = struct{}{}
			conflicts = append(conflicts, p)
		}
	}

	scan := func(cells []Position) {
		var mask uint32
		for _, p := range cells {
			v := b.Get(p.Row, p.Col)
			if v == 0 {
				continue
			}
			bit := uint32(1) << uint(v-1)
			if mask&bit != 0 {
				flag(p)
			}
			mask |= bit
		}
	}

	cells := make([]Position, size)
	for r := 0; r < size; r++ {
		for i := 0; i < size; i++ {
			cells[i] = Position{Row: r, Col: i}
		}
		scan(cells)
	}
	for c := 0; c < size; c++ {
		for i := 0; i < size; i++ {
			cells[i] = Position{Row: i, Col: c}
		}
		scan(cells)
	}
	for br := 0; br < size; br += box {
		for bc := 0; bc < size; bc += box {
			i := 0
			for dr := 0; dr < box; dr++ {
				for dc := 0; dc < box; dc++ {
					cells[i] = Position{Row: br + dr, Col: bc + dc}
					i++
				}
			}
			scan(cells)
		}
	}
	return conflicts
}
