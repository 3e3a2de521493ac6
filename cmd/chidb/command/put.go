package command

import (
	"errors"
	"flag"
	"strconv"
	"strings"

	"github.com/jmininger/chidb/internal/btree"
)

// PutCommand exercises InsertInTable directly from the shell.
type PutCommand struct{}

func (c *PutCommand) Help() string {
	return strings.TrimSpace(`
Usage: chidb put <path> <table-root-page> <key> <value>
`)
}

func (c *PutCommand) Synopsis() string {
	return "Insert a key/value pair into a table B-tree"
}

func (c *PutCommand) Run(args []string) int {
	logger := newLogger("info")

	flags := flag.NewFlagSet("put", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 4 {
		logger.Error("usage: chidb put <path> <table-root-page> <key> <value>")
		return 1
	}

	path := flags.Arg(0)
	rootPage, key, err := parsePageAndKey(flags.Arg(1), flags.Arg(2))
	if err != nil {
		logger.Error(err)
		return 1
	}
	value := flags.Arg(3)

	bt, err := btree.Open(path)
	if err != nil {
		logger.Errorf("open %s: %s", path, err)
		return 1
	}
	defer bt.Close()

	if err := bt.InsertInTable(rootPage, key, []byte(value)); err != nil {
		if errors.Is(err, btree.ErrDuplicate) {
			logger.Errorf("key %d already exists on page %d", key, rootPage)
		} else {
			logger.Errorf("put: %s", err)
		}
		return 1
	}

	logger.Infof("inserted key=%d on root page %d", key, rootPage)
	return 0
}

func parsePageAndKey(pageArg, keyArg string) (uint32, uint32, error) {
	page, err := strconv.ParseUint(pageArg, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	key, err := strconv.ParseUint(keyArg, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint32(page), uint32(key), nil
}
