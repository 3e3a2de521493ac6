package btree

import (
	"testing"

	"github.com/jmininger/chidb/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageSize = 1024

func newTestPage(number uint32) *pager.Page {
	return &pager.Page{Number: number, Data: make([]byte, testPageSize)}
}

func TestInitEmptyLeafNode(t *testing.T) {
	page := newTestPage(2)
	node := InitEmpty(page, TableLeaf, testPageSize)

	assert.Equal(t, TableLeaf, node.Type)
	assert.Equal(t, uint16(0), node.NCells)
	assert.Equal(t, uint16(testPageSize), node.CellsOffset)
	assert.Equal(t, uint16(8), node.FreeOffset)
	assert.Equal(t, uint32(0), node.RightPage)
}

func TestInitEmptyNodeOnPage1ReservesFileHeader(t *testing.T) {
	page := newTestPage(1)
	node := InitEmpty(page, TableLeaf, testPageSize)

	assert.Equal(t, HeaderSize+8, int(node.FreeOffset))
}

func TestLoadNodeRoundTripsThroughInitEmpty(t *testing.T) {
	page := newTestPage(3)
	InitEmpty(page, TableInternal, testPageSize)

	loaded, err := LoadNode(page, testPageSize)
	require.NoError(t, err)
	assert.Equal(t, TableInternal, loaded.Type)
	assert.Equal(t, uint16(0), loaded.NCells)
	assert.Equal(t, uint16(testPageSize), loaded.CellsOffset)
}

func TestLoadNodeRejectsInvalidType(t *testing.T) {
	page := newTestPage(2)
	page.Data[0] = 0xFF

	_, err := LoadNode(page, testPageSize)
	assert.ErrorIs(t, err, ErrCorruptHeader)
}

func TestInsertCellThenGetCell(t *testing.T) {
	page := newTestPage(2)
	node := InitEmpty(page, TableLeaf, testPageSize)

	require.NoError(t, node.InsertCell(0, Cell{Type: TableLeaf, Key: 10, Data: []byte("ten")}))
	require.NoError(t, node.InsertCell(1, Cell{Type: TableLeaf, Key: 20, Data: []byte("twenty")}))

	assert.Equal(t, uint16(2), node.NCells)

	c0, err := node.GetCell(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), c0.Key)
	assert.Equal(t, []byte("ten"), c0.Data)

	c1, err := node.GetCell(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), c1.Key)
	assert.Equal(t, []byte("twenty"), c1.Data)
}

func TestInsertCellAtMiddleShiftsOffsetArray(t *testing.T) {
	page := newTestPage(2)
	node := InitEmpty(page, TableLeaf, testPageSize)

	require.NoError(t, node.InsertCell(0, Cell{Type: TableLeaf, Key: 1, Data: []byte("a")}))
	require.NoError(t, node.InsertCell(1, Cell{Type: TableLeaf, Key: 3, Data: []byte("c")}))
	require.NoError(t, node.InsertCell(1, Cell{Type: TableLeaf, Key: 2, Data: []byte("b")}))

	for i, want := range []uint32{1, 2, 3} {
		c, err := node.GetCell(uint16(i))
		require.NoError(t, err)
		assert.Equal(t, want, c.Key)
	}
}

func TestGetCellOutOfRangeIsBadCellNo(t *testing.T) {
	page := newTestPage(2)
	node := InitEmpty(page, TableLeaf, testPageSize)

	_, err := node.GetCell(0)
	assert.ErrorIs(t, err, ErrBadCellNo)
}

func TestIsFullReportsWhenNodeCannotFitAnotherCell(t *testing.T) {
	page := newTestPage(2)
	node := InitEmpty(page, TableLeaf, testPageSize)

	big := Cell{Type: TableLeaf, Key: 1, Data: make([]byte, 2000)}
	assert.True(t, node.IsFull(big))

	small := Cell{Type: TableLeaf, Key: 1, Data: []byte("x")}
	assert.False(t, node.IsFull(small))
}

func TestRemoveCellBlockCompactsCellArea(t *testing.T) {
	page := newTestPage(2)
	node := InitEmpty(page, TableLeaf, testPageSize)

	require.NoError(t, node.InsertCell(0, Cell{Type: TableLeaf, Key: 1, Data: []byte("aaaa")}))
	require.NoError(t, node.InsertCell(1, Cell{Type: TableLeaf, Key: 2, Data: []byte("bb")}))
	require.NoError(t, node.InsertCell(2, Cell{Type: TableLeaf, Key: 3, Data: []byte("cccccc")}))

	offsetBefore := node.CellsOffset
	require.NoError(t, node.RemoveCellBlock(1))
	assert.Equal(t, offsetBefore+10, node.CellsOffset) // 8-byte cell header + 2 data bytes

	// Cell bodies for 0 and 2 are still intact and readable through their
	// unchanged offset-array slots.
	c0, err := node.GetCell(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("aaaa"), c0.Data)

	c2, err := node.GetCell(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("cccccc"), c2.Data)
}
