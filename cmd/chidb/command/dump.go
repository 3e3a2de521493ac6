package command

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmininger/chidb/internal/btree"
)

// DumpCommand prints a node's header fields and the key of every cell it
// holds, as a quick way to inspect a page's contents from the command
// line while debugging the engine.
type DumpCommand struct{}

func (c *DumpCommand) Help() string {
	return strings.TrimSpace(`
Usage: chidb dump <path> <page>
`)
}

func (c *DumpCommand) Synopsis() string {
	return "Print a node's header and cell directory"
}

func (c *DumpCommand) Run(args []string) int {
	logger := newLogger("info")

	flags := flag.NewFlagSet("dump", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 2 {
		logger.Error("usage: chidb dump <path> <page>")
		return 1
	}

	path := flags.Arg(0)
	page, err := strconv.ParseUint(flags.Arg(1), 10, 32)
	if err != nil {
		logger.Error(err)
		return 1
	}

	bt, err := btree.Open(path)
	if err != nil {
		logger.Errorf("open %s: %s", path, err)
		return 1
	}
	defer bt.Close()

	node, err := bt.GetNodeByPage(uint32(page))
	if err != nil {
		logger.Errorf("read page %d: %s", page, err)
		return 1
	}

	fmt.Printf("page %d: type=%s free_offset=%d ncells=%d cells_offset=%d",
		page, node.Type, node.FreeOffset, node.NCells, node.CellsOffset)
	if node.Type.IsInternal() {
		fmt.Printf(" right_page=%d", node.RightPage)
	}
	fmt.Println()

	for i := uint16(0); i < node.NCells; i++ {
		cell, err := node.GetCell(i)
		if err != nil {
			logger.Errorf("cell %d: %s", i, err)
			return 1
		}
		switch {
		case node.Type.IsInternal():
			fmt.Printf("  cell %d: key=%d child_page=%d\n", i, cell.Key, cell.ChildPage)
		case node.Type == btree.TableLeaf:
			fmt.Printf("  cell %d: key=%d data_size=%d\n", i, cell.Key, len(cell.Data))
		default:
			fmt.Printf("  cell %d: key=%d pk_key=%d\n", i, cell.Key, cell.PKKey)
		}
	}

	return 0
}
