package btree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSizes(t *testing.T) {
	assert.Equal(t, uint16(8), cellSize(TableInternal, Cell{}))
	assert.Equal(t, uint16(16), cellSize(IndexInternal, Cell{}))
	assert.Equal(t, uint16(12), cellSize(IndexLeaf, Cell{}))
	assert.Equal(t, uint16(8+5), cellSize(TableLeaf, Cell{Data: []byte("hello")}))
}

func TestTableInternalCellRoundTrip(t *testing.T) {
	cell := Cell{Type: TableInternal, ChildPage: 7, Key: 42}
	buf := make([]byte, cellSize(TableInternal, cell))
	encodeCell(TableInternal, cell, buf)

	got, err := decodeCell(TableInternal, buf)
	require.NoError(t, err)
	assert.Equal(t, cell.ChildPage, got.ChildPage)
	assert.Equal(t, cell.Key, got.Key)
}

func TestTableLeafCellRoundTripAliasesData(t *testing.T) {
	cell := Cell{Type: TableLeaf, Key: 9, Data: []byte("payload")}
	buf := make([]byte, cellSize(TableLeaf, cell))
	encodeCell(TableLeaf, cell, buf)

	got, err := decodeCell(TableLeaf, buf)
	require.NoError(t, err)
	assert.Equal(t, cell.Key, got.Key)
	assert.Equal(t, []byte("payload"), got.Data)

	// Data aliases buf: mutating the source buffer is visible through got.
	buf[8] = 'P'
	assert.Equal(t, byte('P'), got.Data[0])
}

func TestIndexInternalCellRoundTripAndFixedSchemaBytes(t *testing.T) {
	cell := Cell{Type: IndexInternal, ChildPage: 3, Key: 11, PKKey: 99}
	buf := make([]byte, cellSize(IndexInternal, cell))
	encodeCell(IndexInternal, cell, buf)

	assert.Equal(t, indexCellSchema[:], buf[4:8])

	got, err := decodeCell(IndexInternal, buf)
	require.NoError(t, err)
	assert.Equal(t, cell.ChildPage, got.ChildPage)
	assert.Equal(t, cell.Key, got.Key)
	assert.Equal(t, cell.PKKey, got.PKKey)
}

func TestIndexLeafCellRoundTrip(t *testing.T) {
	cell := Cell{Type: IndexLeaf, Key: 5, PKKey: 17}
	buf := make([]byte, cellSize(IndexLeaf, cell))
	encodeCell(IndexLeaf, cell, buf)

	assert.Equal(t, indexCellSchema[:], buf[0:4])

	got, err := decodeCell(IndexLeaf, buf)
	require.NoError(t, err)
	assert.Equal(t, cell.Key, got.Key)
	assert.Equal(t, cell.PKKey, got.PKKey)
}

func TestDecodeCellRejectsInvalidType(t *testing.T) {
	_, err := decodeCell(NodeType(0xFF), make([]byte, 16))
	assert.Error(t, err)
}
