package sudoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyNetwork(t *testing.T, size int) *ConstraintNetwork {
	t.Helper()
	b, err := NewGridBoard(size)
	require.NoError(t, err)
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)
	return net
}

func TestNewConstraintNetworkRejectsBadSizes(t *testing.T) {
	for _, size := range []int{0, 3, 5, 8, 36} {
		_, err := NewGridBoard(size)
		assert.ErrorIs(t, err, ErrBoardSize, "size %d", size)
	}
}

// Neighbor sets on an empty board are fixed-size, self-excluding, and
// symmetric: 20 peers per cell on a classic 9x9.
func TestNeighborSets(t *testing.T) {
	tests := []struct {
		size      int
		wantPeers int
	}{
		{size: 4, wantPeers: 7},
		{size: 9, wantPeers: 20},
		{size: 16, wantPeers: 39},
	}
	for _, tt := range tests {
		net := emptyNetwork(t, tt.size)
		for r := 0; r < tt.size; r++ {
			for c := 0; c < tt.size; c++ {
				peers := net.Neighbors(r, c)
				require.Len(t, peers, tt.wantPeers, "size %d cell (%d,%d)", tt.size, r, c)
				self := Position{Row: r, Col: c}
				seen := make(map[Position]struct{}, len(peers))
				for _, p := range peers {
					require.NotEqual(t, self, p, "neighbor set must exclude the cell itself")
					seen[p] = struct{}{}
					// Symmetry: the cell appears in each peer's set.
					back := false
					for _, q := range net.Neighbors(p.Row, p.Col) {
						if q == self {
							back = true
							break
						}
					}
					require.True(t, back, "neighbor relation must be symmetric")
				}
				require.Len(t, seen, tt.wantPeers, "neighbor list must be deduplicated")
			}
		}
	}
}

// A given at (0,0) must already be stripped from its row, column, and box
// peers by the construction pass, before any arc consistency runs.
func TestConstructionNaiveElimination(t *testing.T) {
	b, err := NewGridBoard(9)
	require.NoError(t, err)
	b.Set(0, 0, 5)
	net, err := NewConstraintNetwork(b)
	require.NoError(t, err)

	assert.True(t, net.Domain(0, 0).IsSingleton())
	assert.Equal(t, 5, net.Domain(0, 0).Value())
	assert.False(t, net.HasValue(0, 1, 5))
	assert.False(t, net.HasValue(1, 0, 5))
	assert.False(t, net.HasValue(1, 1, 5))
	// A cell sharing nothing with (0,0) keeps its full domain.
	assert.True(t, net.HasValue(4, 4, 5))
	assert.Equal(t, 9, net.DomainSize(4, 4))
}

func TestAssignValueYieldsSingleton(t *testing.T) {
	net := emptyNetwork(t, 9)
	// Regardless of prior state.
	net.RemoveValue(3, 4, 7)
	net.AssignValue(3, 4, 7)
	assert.Equal(t, SingletonDomain(7), net.Domain(3, 4))
}

func TestRestoreDomainYieldsFullSet(t *testing.T) {
	net := emptyNetwork(t, 9)
	net.AssignValue(2, 2, 1)
	net.RestoreDomain(2, 2)
	assert.Equal(t, FullDomain(9), net.Domain(2, 2))
}

func TestUndoTrailRestoresExactly(t *testing.T) {
	net := emptyNetwork(t, 4)
	before := make([]Domain, 16)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			before[r*4+c] = net.Domain(r, c)
		}
	}

	mark := net.Snapshot()
	net.AssignValue(0, 0, 1)
	net.RemoveValue(0, 1, 1)
	net.RemoveValue(1, 1, 1)
	net.SetDomain(3, 3, DomainOf(2))
	net.UndoTo(mark)

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			assert.Equal(t, before[r*4+c], net.Domain(r, c), "cell (%d,%d)", r, c)
		}
	}
	assert.Equal(t, mark, net.Snapshot())
}

func TestUndecidedAndComplete(t *testing.T) {
	net := emptyNetwork(t, 4)
	assert.Equal(t, 16, net.Undecided())
	assert.False(t, net.Complete())
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			net.AssignValue(r, c, 1+(r+c)%4)
		}
	}
	assert.Equal(t, 0, net.Undecided())
	assert.True(t, net.Complete())
}
