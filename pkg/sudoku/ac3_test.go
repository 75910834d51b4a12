package sudoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// On a fully empty 9x9 board arc consistency succeeds, performs revisions,
// and removes nothing: every domain keeps all nine candidates.
func TestEnforceConsistencyEmptyBoard(t *testing.T) {
	net := emptyNetwork(t, 9)
	var st Stats
	p := NewPropagator(net)
	p.Stats = &st

	require.True(t, p.EnforceConsistency())
	assert.Greater(t, st.Revisions, 0)
	assert.Zero(t, st.ValuesEliminated)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			assert.Equal(t, 9, net.DomainSize(r, c))
		}
	}
}

// A row holding 1..8 forces its remaining cell to {9}.
func TestEnforceConsistencySolvesLastInRow(t *testing.T) {
	b, err := NewGridBoard(9)
	require.NoError(t, err)
	for c := 0; c < 8; c++ {
		b.Set(0, c, c+1)
	}
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)

	p := NewPropagator(net)
	require.True(t, p.EnforceConsistency())
	assert.Equal(t, SingletonDomain(9), net.Domain(0, 8))
}

// A manually emptied domain makes enforcement fail.
func TestEnforceConsistencyDetectsEmptyDomain(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(4, 4, Domain{})
	p := NewPropagator(net)
	assert.False(t, p.EnforceConsistency())
}

// Enforcement only ever removes values: every domain afterwards is a
// subset of the domain before.
func TestEnforceConsistencyOnlyShrinksDomains(t *testing.T) {
	b, err := ParseGrid("53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79")
	require.NoError(t, err)
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)

	before := make([]Domain, 81)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			before[r*9+c] = net.Domain(r, c)
		}
	}

	p := NewPropagator(net)
	require.True(t, p.EnforceConsistency())
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			after := net.Domain(r, c)
			after.Iterate(func(v int) {
				assert.True(t, before[r*9+c].Has(v),
					"cell (%d,%d): value %d appeared from nowhere", r, c, v)
			})
		}
	}
}

// Enforcement returns false iff some cell ends with an empty domain.
func TestEnforceConsistencyFailureLeavesEmptyDomain(t *testing.T) {
	// Conflicting givens: two 1s in the same row.
	b, err := NewGridBoard(9)
	require.NoError(t, err)
	b.Set(0, 0, 1)
	b.Set(0, 5, 1)
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)

	p := NewPropagator(net)
	require.False(t, p.EnforceConsistency())
	_, empty := net.FirstEmpty()
	assert.True(t, empty)

	// And the converse: success means no empty domain anywhere.
	net2 := emptyNetwork(t, 9)
	p2 := NewPropagator(net2)
	require.True(t, p2.EnforceConsistency())
	_, empty = net2.FirstEmpty()
	assert.False(t, empty)
}

func TestReviseRemovesUnsupportedValue(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(0, 0, SingletonDomain(5))
	p := NewPropagator(net)

	xi, xj := Position{Row: 0, Col: 1}, Position{Row: 0, Col: 0}
	assert.True(t, p.Revise(xi, xj))
	assert.False(t, net.HasValue(0, 1, 5))
	// Second pass finds nothing left to remove.
	assert.False(t, p.Revise(xi, xj))
}

func TestPropagateFromTargetsAssignedCell(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.AssignValue(4, 4, 3)
	p := NewPropagator(net)
	require.True(t, p.PropagateFrom(4, 4))

	for _, q := range net.Neighbors(4, 4) {
		assert.False(t, net.HasValue(q.Row, q.Col, 3), "peer (%d,%d)", q.Row, q.Col)
	}
	// An unrelated cell is untouched.
	assert.True(t, net.HasValue(0, 8, 3))
}

func TestFindSinglesStopsAtFirstCollapse(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(0, 0, SingletonDomain(5))
	net.SetDomain(0, 1, DomainOf(5, 7))

	p := NewPropagator(net)
	pos, v, ok := p.FindSingles()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 1}, pos)
	assert.Equal(t, 7, v)
}

func TestFindSinglesNoCollapse(t *testing.T) {
	net := emptyNetwork(t, 9)
	_, _, ok := NewPropagator(net).FindSingles()
	assert.False(t, ok)
}
