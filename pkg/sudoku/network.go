// Package sudoku constraint network. The ConstraintNetwork is the shared
// substrate every other engine component reads and mutates: one Domain per
// cell plus a fixed neighbor graph (row + column + box, deduplicated)
// computed once at construction. Topology never changes after creation;
// only domains do.
package sudoku

import (
	"sort"
	"sync"
)

// Position identifies a cell on the board.
type Position struct {
	Row int
	Col int
}

// domainChange is one entry in the undo trail: the domain a cell held
// before a mutation. Truncating the trail back to a snapshot restores
// every mutation made since, in reverse order.
type domainChange struct {
	pos   Position
	prior Domain
}

// ConstraintNetwork holds per-cell candidate domains and the precomputed
// neighbor lists for one board. It is built fresh from a board snapshot,
// mutated heavily during a single solve attempt, and discarded afterwards;
// it is never shared between concurrent searches or reused across boards.
type ConstraintNetwork struct {
	size      int
	box       int
	domains   []Domain
	neighbors [][]Position
	trail     []domainChange
}

// NewConstraintNetwork builds a network from a board snapshot. Filled cells
// get singleton domains; empty cells start full and then one naive pass
// removes values already present among row/column/box peers. This is not
// yet full arc consistency; run EnforceConsistency for that.
func NewConstraintNetwork(b Board) (*ConstraintNetwork, error) {
	size := b.Size()
	box, err := subgridSizeFor(size)
	if err != nil {
		return nil, err
	}
	n := &ConstraintNetwork{
		size:      size,
		box:       box,
		domains:   make([]Domain, size*size),
		neighbors: neighborsFor(size, box),
		trail:     make([]domainChange, 0, 4*size*size),
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			v := b.Get(r, c)
			if v < 0 || v > size {
				return nil, ErrInvalidValue
			}
			if v != 0 {
				n.domains[r*size+c] = SingletonDomain(v)
			} else {
				n.domains[r*size+c] = FullDomain(size)
			}
		}
	}
	// Naive elimination pass: strip each given from its empty peers.
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			v := b.Get(r, c)
			if v == 0 {
				continue
			}
			for _, p := range n.Neighbors(r, c) {
				d := &n.domains[p.Row*size+p.Col]
				if b.Get(p.Row, p.Col) == 0 {
					d.Remove(v)
				}
			}
		}
	}
	return n, nil
}

// neighborCache memoizes neighbor graphs per board size. The graph is a
// pure function of the dimension and read-only after construction, so
// every network of the same size can share one copy. Guarded for
// concurrent batch generation.
var (
	neighborCacheMu sync.Mutex
	neighborCache   = map[int][][]Position{}
)

func neighborsFor(size, box int) [][]Position {
	neighborCacheMu.Lock()
	defer neighborCacheMu.Unlock()
	if cached, ok := neighborCache[size]; ok {
		return cached
	}
	all := make([][]Position, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			seen := make(map[Position]struct{}, 3*size)
			for i := 0; i < size; i++ {
				seen[Position{Row: r, Col: i}] = struct{}{}
				seen[Position{Row: i, Col: c}] = struct{}{}
			}
			br, bc := (r/box)*box, (c/box)*box
			for dr := 0; dr < box; dr++ {
				for dc := 0; dc < box; dc++ {
					seen[Position{Row: br + dr, Col: bc + dc}] = struct{}{}
				}
			}
			delete(seen, Position{Row: r, Col: c})
			list := make([]Position, 0, len(seen))
			for p := range seen {
				list = append(list, p)
			}
			sort.Slice(list, func(i, j int) bool {
				if list[i].Row != list[j].Row {
					return list[i].Row < list[j].Row
				}
				return list[i].Col < list[j].Col
			})
			all[r*size+c] = list
		}
	}
	neighborCache[size] = all
	return all
}

// Size returns the board dimension N.
func (n *ConstraintNetwork) Size() int { return n.size }

// SubgridSize returns the box dimension sqrt(N).
func (n *ConstraintNetwork) SubgridSize() int { return n.box }

func (n *ConstraintNetwork) idx(r, c int) int { return r*n.size + c }

// Domain returns a copy of the cell's current domain.
func (n *ConstraintNetwork) Domain(r, c int) Domain { return n.domains[n.idx(r, c)] }

// DomainSize returns the number of candidates at (r, c). O(1).
func (n *ConstraintNetwork) DomainSize(r, c int) int { return n.domains[n.idx(r, c)].Count() }

// HasValue reports whether v is still a candidate at (r, c). O(1).
func (n *ConstraintNetwork) HasValue(r, c, v int) bool { return n.domains[n.idx(r, c)].Has(v) }

// IsEmpty reports whether the cell's domain has been wiped out.
func (n *ConstraintNetwork) IsEmpty(r, c int) bool { return n.domains[n.idx(r, c)].IsEmpty() }

// Neighbors returns the precomputed, fixed neighbor list for (r, c). The
// returned slice is shared and must not be modified.
func (n *ConstraintNetwork) Neighbors(r, c int) []Position { return n.neighbors[n.idx(r, c)] }

// RemoveValue deletes v from the cell's domain and reports whether the
// domain changed. The prior domain is recorded on the undo trail.
func (n *ConstraintNetwork) RemoveValue(r, c, v int) bool {
	i := n.idx(r, c)
	if !n.domains[i].Has(v) {
		return false
	}
	n.trail = append(n.trail, domainChange{pos: Position{Row: r, Col: c}, prior: n.domains[i]})
	n.domains[i].Remove(v)
	return true
}

// AssignValue replaces the cell's domain with the singleton {v}. Legality
// is not checked; that is the caller's responsibility. The prior domain is
// recorded on the undo trail.
func (n *ConstraintNetwork) AssignValue(r, c, v int) {
	i := n.idx(r, c)
	n.trail = append(n.trail, domainChange{pos: Position{Row: r, Col: c}, prior: n.domains[i]})
	n.domains[i].Assign(v)
}

// RestoreDomain resets the cell to the full 1..N set. Used when undoing a
// trial assignment outside the trail mechanism; the caller must
// re-propagate afterwards.
func (n *ConstraintNetwork) RestoreDomain(r, c int) {
	i := n.idx(r, c)
	n.trail = append(n.trail, domainChange{pos: Position{Row: r, Col: c}, prior: n.domains[i]})
	n.domains[i].Restore(n.size)
}

// SetDomain overwrites the cell's domain wholesale, recording the prior
// domain on the undo trail.
func (n *ConstraintNetwork) SetDomain(r, c int, d Domain) {
	i := n.idx(r, c)
	n.trail = append(n.trail, domainChange{pos: Position{Row: r, Col: c}, prior: n.domains[i]})
	n.domains[i] = d
}

// Snapshot returns a mark for the current trail position. Passing it to
// UndoTo rolls back every mutation made since.
func (n *ConstraintNetwork) Snapshot() int { return len(n.trail) }

// UndoTo restores, in reverse order, every domain mutation recorded since
// the given snapshot mark.
func (n *ConstraintNetwork) UndoTo(mark int) {
	for i := len(n.trail) - 1; i >= mark; i-- {
		ch := n.trail[i]
		n.domains[n.idx(ch.pos.Row, ch.pos.Col)] = ch.prior
	}
	n.trail = n.trail[:mark]
}

// Undecided returns the number of cells whose domain is not yet singleton.
func (n *ConstraintNetwork) Undecided() int {
	count := 0
	for i := range n.domains {
		if n.domains[i].Count() != 1 {
			count++
		}
	}
	return count
}

// Complete reports whether every cell has collapsed to a single candidate.
func (n *ConstraintNetwork) Complete() bool { return n.Undecided() == 0 }

// FirstEmpty returns the position of the first cell with an empty domain,
// scanning in row-major order.
func (n *ConstraintNetwork) FirstEmpty() (Position, bool) {
	for i := range n.domains {
		if n.domains[i].IsEmpty() {
			return Position{Row: i / n.size, Col: i % n.size}, true
		}
	}
	return Position{}, false
}
