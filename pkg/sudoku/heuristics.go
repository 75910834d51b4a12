// Package sudoku heuristic cell and value ordering.
//
// Cell selection scores every undecided cell and picks the lowest
// priority. The combined score is
//
//	domainSize*MRVWeight - boxFill*DensityWeight - undecided*DegreeWeight
//
// so fewest remaining candidates dominates (fail-first), ties favor cells
// in denser boxes (more-constrained regions resolve first), and further
// ties favor cells with more undecided neighbors (maximizes future
// propagation). MRV, degree, and density are also available as pure
// strategies behind the same selection entry point.
package sudoku

import (
	"math/rand"
	"sort"
)

// SelectionStrategy chooses how undecided cells are prioritized.
type SelectionStrategy int

const (
	// SelectCombined uses the weighted MRV/density/degree score.
	SelectCombined SelectionStrategy = iota
	// SelectMRV picks the cell with the fewest remaining candidates.
	SelectMRV
	// SelectDegree picks the cell with the most undecided neighbors.
	SelectDegree
	// SelectDensity picks the cell in the most filled box.
	SelectDensity
)

// HeuristicWeights configures the combined score.
type HeuristicWeights struct {
	MRV     int
	Density int
	Degree  int
}

// DefaultWeights returns the standard weighting: domain size dominates,
// box density breaks ties, undecided-neighbor count breaks further ties.
func DefaultWeights() HeuristicWeights {
	return HeuristicWeights{MRV: 1000, Density: 100, Degree: 10}
}

// CellScore is the per-cell bundle produced during selection.
type CellScore struct {
	Pos                Position
	DomainSize         int
	BoxFill            int
	UndecidedNeighbors int
	Priority           int
}

// SubgridDensityCache tracks the number of decided cells per box. It is
// built once by scanning singleton domains and then kept in lock-step by
// the solver on every tentative assign/unassign; it is never recomputed
// from scratch during search.
type SubgridDensityCache struct {
	box  int
	fill []int
}

// NewSubgridDensityCache scans the network's singleton domains and builds
// the per-box fill counts.
func NewSubgridDensityCache(net *ConstraintNetwork) *SubgridDensityCache {
	c := &SubgridDensityCache{box: net.SubgridSize(), fill: make([]int, net.Size())}
	for r := 0; r < net.Size(); r++ {
		for col := 0; col < net.Size(); col++ {
			if net.DomainSize(r, col) == 1 {
				c.fill[c.BoxIndex(r, col)]++
			}
		}
	}
	return c
}

// BoxIndex returns the index of the box containing (r, c).
func (c *SubgridDensityCache) BoxIndex(r, col int) int {
	return (r/c.box)*c.box + col/c.box
}

// Fill returns the decided-cell count of the box containing (r, c).
func (c *SubgridDensityCache) Fill(r, col int) int { return c.fill[c.BoxIndex(r, col)] }

// CellAssigned records a tentative assignment at (r, c).
func (c *SubgridDensityCache) CellAssigned(r, col int) { c.fill[c.BoxIndex(r, col)]++ }

// CellUnassigned reverts a tentative assignment at (r, c).
func (c *SubgridDensityCache) CellUnassigned(r, col int) { c.fill[c.BoxIndex(r, col)]-- }

// Selector scores undecided cells under one strategy. One selector is
// owned by one solve attempt, alongside the network and density cache it
// reads.
type Selector struct {
	strategy SelectionStrategy
	weights  HeuristicWeights
	cache    *SubgridDensityCache
}

// NewSelector creates a selector over the given density cache.
func NewSelector(strategy SelectionStrategy, weights HeuristicWeights, cache *SubgridDensityCache) *Selector {
	return &Selector{strategy: strategy, weights: weights, cache: cache}
}

// SelectCell scans every undecided cell once and returns the one with the
// lowest priority under the configured strategy. Ties break toward the
// smaller (row, col), which the row-major scan yields for free. Returns
// ok=false when no cell has more than one candidate left.
func (s *Selector) SelectCell(net *ConstraintNetwork) (CellScore, bool) {
	best := CellScore{}
	found := false
	size := net.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			ds := net.DomainSize(r, c)
			if ds <= 1 {
				continue
			}
			score := s.score(net, r, c, ds)
			if !found || score.Priority < best.Priority {
				best = score
				found = true
			}
		}
	}
	return best, found
}

func (s *Selector) score(net *ConstraintNetwork, r, c, domainSize int) CellScore {
	undecided := 0
	for _, p := range net.Neighbors(r, c) {
		if net.DomainSize(p.Row, p.Col) > 1 {
			undecided++
		}
	}
	boxFill := s.cache.Fill(r, c)
	cs := CellScore{
		Pos:                Position{Row: r, Col: c},
		DomainSize:         domainSize,
		BoxFill:            boxFill,
		UndecidedNeighbors: undecided,
	}
	switch s.strategy {
	case SelectMRV:
		cs.Priority = domainSize
	case SelectDegree:
		cs.Priority = -undecided
	case SelectDensity:
		cs.Priority = -boxFill
	default:
		cs.Priority = domainSize*s.weights.MRV - boxFill*s.weights.Density - undecided*s.weights.Degree
	}
	return cs
}

// OrderValues orders the cell's candidates least-constraining first: a
// value that appears in fewer neighbor domains is less likely to cause an
// immediate dead end. Ties break toward the smaller value, or randomly
// when rng is non-nil (used by the generator to diversify fills).
func OrderValues(net *ConstraintNetwork, r, c int, rng *rand.Rand) []int {
	values := net.Domain(r, c).Values()
	counts := make(map[int]int, len(values))
	for _, v := range values {
		n := 0
		for _, p := range net.Neighbors(r, c) {
			if net.HasValue(p.Row, p.Col, v) {
				n++
			}
		}
		counts[v] = n
	}
	if rng != nil {
		rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
		sort.SliceStable(values, func(i, j int) bool { return counts[values[i]] < counts[values[j]] })
		return values
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] < counts[values[j]]
		}
		return values[i] < values[j]
	})
	return values
}

// FindHiddenSingle scans every row, column, and box for a value with
// exactly one legal cell remaining and returns that cell and value.
// A hit is only reported for cells that are not already singleton.
func FindHiddenSingle(net *ConstraintNetwork) (Position, int, bool) {
	size := net.Size()
	box := net.SubgridSize()

	check := func(cells []Position) (Position, int, bool) {
		for v := 1; v <= size; v++ {
			var only Position
			count := 0
			for _, p := range cells {
				if net.HasValue(p.Row, p.Col, v) {
					only = p
					count++
					if count > 1 {
						break
					}
				}
			}
			if count == 1 && net.DomainSize(only.Row, only.Col) > 1 {
				return only, v, true
			}
		}
		return Position{}, 0, false
	}

	cells := make([]Position, size)
	for r := 0; r < size; r++ {
		for i := 0; i < size; i++ {
			cells[i] = Position{Row: r, Col: i}
		}
		if p, v, ok := check(cells); ok {
			return p, v, true
		}
	}
	for c := 0; c < size; c++ {
		for i := 0; i < size; i++ {
			cells[i] = Position{Row: i, Col: c}
		}
		if p, v, ok := check(cells); ok {
			return p, v, true
		}
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
			if p, v, ok := check(cells); ok {
				return p, v, true
			}
		}
	}
	return Position{}, 0, false
}
