package sudoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubgridDensityCache(t *testing.T) {
	b, err := NewGridBoard(9)
	require.NoError(t, err)
	b.Set(0, 0, 1)
	b.Set(1, 1, 2)
	b.Set(4, 4, 5)
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)

	cache := NewSubgridDensityCache(net)
	assert.Equal(t, 2, cache.Fill(0, 0), "top-left box holds two givens")
	assert.Equal(t, 1, cache.Fill(4, 4))
	assert.Equal(t, 0, cache.Fill(8, 8))

	// Incremental updates stay in lock-step with a rebuilt cache.
	cache.CellAssigned(0, 2)
	assert.Equal(t, 3, cache.Fill(0, 0))
	cache.CellUnassigned(0, 2)
	assert.Equal(t, 2, cache.Fill(0, 0))
}

func TestSelectCellMRV(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(5, 3, DomainOf(2, 8))
	net.SetDomain(7, 7, DomainOf(1, 4, 6))

	sel := NewSelector(SelectMRV, DefaultWeights(), NewSubgridDensityCache(net))
	score, ok := sel.SelectCell(net)
	require.True(t, ok)
	assert.Equal(t, Position{Row: 5, Col: 3}, score.Pos)
	assert.Equal(t, 2, score.DomainSize)
}

func TestSelectCellDeterministicTieBreak(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(6, 2, DomainOf(1, 2))
	net.SetDomain(3, 8, DomainOf(3, 4))

	sel := NewSelector(SelectMRV, DefaultWeights(), NewSubgridDensityCache(net))
	score, ok := sel.SelectCell(net)
	require.True(t, ok)
	assert.Equal(t, Position{Row: 3, Col: 8}, score.Pos, "smaller (row, col) wins ties")
}

func TestSelectCellDensityPrefersFullerBox(t *testing.T) {
	b, err := NewGridBoard(9)
	require.NoError(t, err)
	// Fill most of the top-left box.
	b.Set(0, 0, 1)
	b.Set(0, 1, 2)
	b.Set(1, 0, 3)
	b.Set(1, 1, 4)
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)

	sel := NewSelector(SelectDensity, DefaultWeights(), NewSubgridDensityCache(net))
	score, ok := sel.SelectCell(net)
	require.True(t, ok)
	assert.Equal(t, 0, score.Pos.Row/3)
	assert.Equal(t, 0, score.Pos.Col/3)
	assert.Equal(t, 4, score.BoxFill)
}

func TestSelectCellCombinedFormula(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(4, 4, DomainOf(1, 9))

	sel := NewSelector(SelectCombined, DefaultWeights(), NewSubgridDensityCache(net))
	score, ok := sel.SelectCell(net)
	require.True(t, ok)
	require.Equal(t, Position{Row: 4, Col: 4}, score.Pos)
	// domain 2, box fill 0, 20 undecided neighbors.
	assert.Equal(t, 2*1000-0*100-20*10, score.Priority)
}

func TestSelectCellNoneLeft(t *testing.T) {
	net := emptyNetwork(t, 4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			net.AssignValue(r, c, 1)
		}
	}
	sel := NewSelector(SelectCombined, DefaultWeights(), NewSubgridDensityCache(net))
	_, ok := sel.SelectCell(net)
	assert.False(t, ok)
}

func TestOrderValuesLeastConstrainingFirst(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.SetDomain(0, 0, DomainOf(1, 2))
	// Make 2 rarer than 1 among (0,0)'s neighbors.
	net.RemoveValue(0, 5, 2)
	net.RemoveValue(3, 0, 2)
	net.RemoveValue(1, 1, 2)

	order := OrderValues(net, 0, 0, nil)
	assert.Equal(t, []int{2, 1}, order)
}

func TestOrderValuesTieBreaksAscending(t *testing.T) {
	net := emptyNetwork(t, 4)
	order := OrderValues(net, 2, 2, nil)
	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestFindHiddenSingle(t *testing.T) {
	net := emptyNetwork(t, 9)
	// Value 6 is legal only at (0, 4) within row 0.
	for c := 0; c < 9; c++ {
		if c != 4 {
			net.RemoveValue(0, c, 6)
		}
	}
	pos, v, ok := FindHiddenSingle(net)
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 4}, pos)
	assert.Equal(t, 6, v)
}

func TestFindHiddenSingleNone(t *testing.T) {
	net := emptyNetwork(t, 9)
	_, _, ok := FindHiddenSingle(net)
	assert.False(t, ok)
}
