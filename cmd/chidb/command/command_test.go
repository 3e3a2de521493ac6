package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmininger/chidb/internal/btree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutThenGetRoundTripThroughCommandLayer(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	putExit := (&PutCommand{}).Run([]string{dbPath, "1", "7", "hello"})
	require.Equal(t, 0, putExit)

	getExit := (&GetCommand{}).Run([]string{dbPath, "1", "7"})
	assert.Equal(t, 0, getExit)

	// Confirm the value actually landed on disk the way Find reported it.
	bt, err := btree.Open(dbPath)
	require.NoError(t, err)
	defer bt.Close()

	cell, found, err := bt.Find(1, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hello", string(cell.Data))
}

func TestGetMissingKeyReturnsNonZeroExit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	require.Equal(t, 0, (&OpenCommand{}).Run([]string{dbPath}))
	assert.Equal(t, 1, (&GetCommand{}).Run([]string{dbPath, "1", "42"}))
}

func TestRunCommandReplaysWorkload(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "workload.db")
	workloadPath := filepath.Join(dir, "workload.yaml")

	workload := "db_path: " + dbPath + "\n" +
		"log_level: info\n" +
		"root_page: 1\n" +
		"puts:\n" +
		"  - key: 1\n" +
		"    value: one\n" +
		"  - key: 2\n" +
		"    value: two\n" +
		"finds:\n" +
		"  - 1\n" +
		"  - 2\n"
	require.NoError(t, os.WriteFile(workloadPath, []byte(workload), 0o644))

	exit := (&RunCommand{}).Run([]string{workloadPath})
	require.Equal(t, 0, exit)

	bt, err := btree.Open(dbPath)
	require.NoError(t, err)
	defer bt.Close()

	cell, found, err := bt.Find(1, 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "two", string(cell.Data))
}
