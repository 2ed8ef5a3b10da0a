package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellAddAndOverflowSentinel(t *testing.T) {
	var c CollisionCell
	for i := uint32(0); i < CellCapacity; i++ {
		slot := c.Add(100 + i)
		require.Equal(t, uint8(i), slot)
	}
	assert.Equal(t, uint32(CellCapacity), c.Count)

	// Insertions beyond capacity are dropped with the in-band sentinel.
	assert.Equal(t, uint8(NoSlot), c.Add(999))
	assert.Equal(t, uint32(CellCapacity), c.Count)
	for i := uint32(0); i < CellCapacity; i++ {
		assert.Equal(t, 100+i, c.Items[i])
	}
}

func TestGridColumnMajorLayout(t *testing.T) {
	g := NewCollisionGrid(8, 5)
	assert.Len(t, g.Cells, 40)
	assert.Equal(t, int32(0), g.Index(0, 0))
	assert.Equal(t, int32(4), g.Index(0, 4))
	// Advancing one column advances the linear index by Height.
	assert.Equal(t, int32(5), g.Index(1, 0))
	assert.Equal(t, int32(3*5+2), g.Index(3, 2))
}

func TestGridInsertAndClear(t *testing.T) {
	g := NewCollisionGrid(10, 10)
	g.Insert(3, 4, 7)
	g.Insert(3, 4, 8)
	g.Insert(9, 9, 1)

	cell := &g.Cells[g.Index(3, 4)]
	require.Equal(t, uint32(2), cell.Count)
	assert.Equal(t, uint32(7), cell.Items[0])
	assert.Equal(t, uint32(8), cell.Items[1])

	g.Clear()
	for i := range g.Cells {
		require.Zero(t, g.Cells[i].Count)
	}

	// clear; insert*; clear leaves every count at zero again.
	g.Insert(0, 0, 2)
	g.Insert(5, 5, 3)
	g.Clear()
	for i := range g.Cells {
		require.Zero(t, g.Cells[i].Count)
	}
}
