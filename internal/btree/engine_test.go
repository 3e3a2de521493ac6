package btree

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestTree(t *testing.T) *BTree {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), t.Name())
	require.NoError(t, err)
	bt, err := Open(f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { bt.Close() })
	return bt
}

func TestOpenEmptyFileInitializesPage1AsTableLeaf(t *testing.T) {
	bt := openTestTree(t)

	root, err := bt.GetNodeByPage(1)
	require.NoError(t, err)
	assert.Equal(t, TableLeaf, root.Type)
	assert.Equal(t, uint16(0), root.NCells)
}

func TestOpenEmptyFileWritesValidFileHeader(t *testing.T) {
	bt := openTestTree(t)

	header, err := bt.pager.ReadHeader()
	require.NoError(t, err)

	pageSize, err := VerifyHeader(header[:])
	require.NoError(t, err)
	assert.Equal(t, uint16(DefaultPageSize), pageSize)
}

func TestOpenExistingFileRejectsCorruptHeader(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), t.Name())
	require.NoError(t, err)
	_, err = f.WriteString("not a chidb file, but long enough to look like a header..........")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Open(f.Name())
	assert.ErrorIs(t, err, ErrCorruptHeader)
}

func TestNewNodeAllocatesSequentialPages(t *testing.T) {
	bt := openTestTree(t)

	p2, err := bt.NewNode(TableLeaf)
	require.NoError(t, err)
	p3, err := bt.NewNode(TableInternal)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), p2)
	assert.Equal(t, uint32(3), p3)

	n3, err := bt.GetNodeByPage(p3)
	require.NoError(t, err)
	assert.Equal(t, TableInternal, n3.Type)
}
