// Package sudoku forced-cell classification.
//
// The ForcedCellsRegistry records how each determined cell got its value:
// directly by elimination (naked single), by a region scan (hidden single),
// by AC-3 saturation (propagated), or by a surviving guess (backtracked).
// Each entry carries a derived 1-10 difficulty score; the removal pipeline
// consults the registry to keep the deduction technique behind a puzzle's
// target difficulty visible.
//
// A registry is scoped to one solve attempt. On success ownership
// transfers to the caller; on failure it is discarded with the rest of the
// attempt's state.
package sudoku

import "sort"

// ForcedKind classifies how a cell's value was determined. The order is
// meaningful: later kinds are harder for a human to deduce.
type ForcedKind int

const (
	// ForcedNakedSingle marks a domain that reached size 1 by direct
	// elimination against decided peers.
	ForcedNakedSingle ForcedKind = iota
	// ForcedHiddenSingle marks a value with exactly one legal cell left in
	// some row, column, or box.
	ForcedHiddenSingle
	// ForcedPropagated marks a cell that became singleton purely through
	// AC-3 saturation.
	ForcedPropagated
	// ForcedBacktracked marks a cell the solver guessed whose guess
	// survived to the solution.
	ForcedBacktracked
)

// String returns the classification name.
func (k ForcedKind) String() string {
	switch k {
	case ForcedNakedSingle:
		return "naked-single"
	case ForcedHiddenSingle:
		return "hidden-single"
	case ForcedPropagated:
		return "propagated"
	case ForcedBacktracked:
		return "backtracked"
	}
	return "unknown"
}

// Difficulty labels the target grade of a generated puzzle.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	}
	return "unknown"
}

// ForcedCell is one registry entry.
type ForcedCell struct {
	Pos   Position
	Value int
	Kind  ForcedKind
	Depth int
	Score int
}

// ForcedCellsRegistry maps positions to their classification for a single
// solve attempt.
type ForcedCellsRegistry struct {
	cells map[Position]ForcedCell
}

// NewForcedCellsRegistry creates an empty registry.
func NewForcedCellsRegistry() *ForcedCellsRegistry {
	return &ForcedCellsRegistry{cells: make(map[Position]ForcedCell)}
}

// Register records how pos got its value. A cell already classified keeps
// its first classification; later registrations only refresh the value.
func (r *ForcedCellsRegistry) Register(pos Position, value int, kind ForcedKind, depth int) {
	if existing, ok := r.cells[pos]; ok {
		existing.Value = value
		r.cells[pos] = existing
		return
	}
	r.cells[pos] = ForcedCell{
		Pos:   pos,
		Value: value,
		Kind:  kind,
		Depth: depth,
		Score: DifficultyScore(kind, depth),
	}
}

// RegisterBacktracked records a surviving guess at pos.
func (r *ForcedCellsRegistry) RegisterBacktracked(pos Position, value, depth int) {
	r.Register(pos, value, ForcedBacktracked, depth)
}

// IsRegistered reports whether pos has been classified.
func (r *ForcedCellsRegistry) IsRegistered(pos Position) bool {
	_, ok := r.cells[pos]
	return ok
}

// Info returns the entry for pos.
func (r *ForcedCellsRegistry) Info(pos Position) (ForcedCell, bool) {
	fc, ok := r.cells[pos]
	return fc, ok
}

// Kind returns the classification of pos.
func (r *ForcedCellsRegistry) Kind(pos Position) (ForcedKind, bool) {
	fc, ok := r.cells[pos]
	return fc.Kind, ok
}

// Len returns the number of classified cells.
func (r *ForcedCellsRegistry) Len() int { return len(r.cells) }

// Cells returns all entries ordered by (row, col).
func (r *ForcedCellsRegistry) Cells() []ForcedCell {
	out := make([]ForcedCell, 0, len(r.cells))
	for _, fc := range r.cells {
		out = append(out, fc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Row != out[j].Pos.Row {
			return out[i].Pos.Row < out[j].Pos.Row
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}

// Rating aggregates the registry into a single 1-10 difficulty estimate:
// the maximum cell score, nudged upward when many cells needed hard
// techniques. An empty registry rates 1.
func (r *ForcedCellsRegistry) Rating() int {
	if len(r.cells) == 0 {
		return 1
	}
	maxScore, hard := 0, 0
	for _, fc := range r.cells {
		if fc.Score > maxScore {
			maxScore = fc.Score
		}
		if fc.Kind >= ForcedPropagated {
			hard++
		}
	}
	rating := maxScore
	if hard > len(r.cells)/2 {
		rating++
	}
	return clampScore(rating)
}

// difficulty score bases per classification; naked < hidden < propagated
// < backtracked.
var kindBase = map[ForcedKind]int{
	ForcedNakedSingle:  1,
	ForcedHiddenSingle: 3,
	ForcedPropagated:   4,
	ForcedBacktracked:  6,
}

// maxDepthBonus caps the depth contribution to a score.
const maxDepthBonus = 4

// DifficultyScore derives the 1-10 score for a classification made at the
// given recursion depth: a per-kind base plus a depth-proportional bonus,
// capped, then clamped into [1, 10].
func DifficultyScore(kind ForcedKind, depth int) int {
	bonus := depth / 2
	if bonus > maxDepthBonus {
		bonus = maxDepthBonus
	}
	return clampScore(kindBase[kind] + bonus)
}

func clampScore(s int) int {
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

// minProtectedKind returns the easiest classification still protected at
// the target difficulty. Harder targets protect more classes so the
// intended deduction technique stays visible after cell removal.
func minProtectedKind(target Difficulty) ForcedKind {
	switch target {
	case Easy:
		return ForcedBacktracked
	case Medium:
		return ForcedPropagated
	case Hard:
		return ForcedHiddenSingle
	default:
		return ForcedNakedSingle
	}
}

// ProtectionThreshold returns the number of classification classes
// protected from removal at the target difficulty. It is monotonically
// non-decreasing from Easy to Expert.
func ProtectionThreshold(target Difficulty) int {
	return int(ForcedBacktracked-minProtectedKind(target)) + 1
}

// ShouldProtect reports whether the cell at pos must survive the removal
// stage for a puzzle aimed at the target difficulty. Unclassified cells
// are never protected.
func (r *ForcedCellsRegistry) ShouldProtect(pos Position, target Difficulty) bool {
	fc, ok := r.cells[pos]
	if !ok {
		return false
	}
	return fc.Kind >= minProtectedKind(target)
}
