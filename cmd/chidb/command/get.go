package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/jmininger/chidb/internal/btree"
)

// GetCommand exercises Find directly from the shell.
type GetCommand struct{}

func (c *GetCommand) Help() string {
	return strings.TrimSpace(`
Usage: chidb get <path> <table-root-page> <key>
`)
}

func (c *GetCommand) Synopsis() string {
	return "Look up a key in a table B-tree"
}

func (c *GetCommand) Run(args []string) int {
	logger := newLogger("info")

	flags := flag.NewFlagSet("get", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 3 {
		logger.Error("usage: chidb get <path> <table-root-page> <key>")
		return 1
	}

	path := flags.Arg(0)
	rootPage, key, err := parsePageAndKey(flags.Arg(1), flags.Arg(2))
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

	cell, found, err := bt.Find(rootPage, key)
	if err != nil {
		logger.Errorf("get: %s", err)
		return 1
	}
	if !found {
		fmt.Printf("key %d: not found\n", key)
		return 1
	}

	fmt.Printf("key %d: %s\n", key, cell.Data)
	return 0
}
