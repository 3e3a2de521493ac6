// Package btree implements the on-disk B-tree engine of a small didactic
// relational database: the page-format codec, the in-memory node model,
// and the search/insert/split algorithms that maintain B-tree invariants
// across a paged file. It never performs I/O itself — all reads and writes
// go through a pager.Pager.
package btree

import (
	"errors"
	"fmt"

	"github.com/jmininger/chidb/internal/pager"
)

// DefaultPageSize is used for newly created database files.
const DefaultPageSize = 1024

// BTree represents an open "file of B-trees": a single paged file that may
// hold many table and index B-trees, each identified by its root page
// number.
type BTree struct {
	pager pager.Pager
}

// Open opens filename as a chidb B-tree file, creating and initializing it
// if it doesn't already exist.
//
// If the file is empty, this (1) initializes the 100-byte file header
// using DefaultPageSize and (2) creates an empty table-leaf node on page 1.
// Otherwise, the page size is read from the existing header and the header
// is verified; ErrCorruptHeader is returned on any mismatch.
func Open(filename string) (*BTree, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	bt := &BTree{pager: p}

	header, err := p.ReadHeader()
	switch {
	case errors.Is(err, pager.ErrNoHeader):
		if err := bt.initializeNewFile(); err != nil {
			p.Close()
			return nil, err
		}
		return bt, nil
	case err != nil:
		p.Close()
		return nil, err
	}

	pageSize, err := VerifyHeader(header[:])
	if err != nil {
		p.Close()
		return nil, err
	}
	p.SetPageSize(pageSize)
	return bt, nil
}

func (bt *BTree) initializeNewFile() error {
	bt.pager.SetPageSize(DefaultPageSize)

	npage, err := bt.pager.AllocatePage()
	if err != nil {
		return err
	}
	if npage != 1 {
		return fmt.Errorf("btree: expected first allocated page to be 1, got %d", npage)
	}

	if err := bt.InitEmptyNode(npage, TableLeaf); err != nil {
		return err
	}

	page, err := bt.pager.ReadPage(1)
	if err != nil {
		return err
	}
	PackHeader(page.Data[:HeaderSize], DefaultPageSize, 0, 0, 0)
	return bt.pager.WritePage(page)
}

// Close releases the underlying pager.
func (bt *BTree) Close() error {
	return bt.pager.Close()
}

// NewNode allocates a new page and initializes it as an empty node of the
// given type, returning its page number.
func (bt *BTree) NewNode(typ NodeType) (uint32, error) {
	npage, err := bt.pager.AllocatePage()
	if err != nil {
		return 0, err
	}
	if err := bt.InitEmptyNode(npage, typ); err != nil {
		return 0, err
	}
	return npage, nil
}

// InitEmptyNode initializes an already-allocated page to contain an empty
// B-tree node of the given type, and persists it.
func (bt *BTree) InitEmptyNode(npage uint32, typ NodeType) error {
	page, err := bt.pager.ReadPage(npage)
	if err != nil {
		return err
	}
	pageSize := bt.pageSize()
	node := InitEmpty(page, typ, pageSize)
	return bt.WriteNode(node)
}

// GetNodeByPage loads the B-tree node stored on page npage.
func (bt *BTree) GetNodeByPage(npage uint32) (*Node, error) {
	page, err := bt.pager.ReadPage(npage)
	if err != nil {
		return nil, err
	}
	return LoadNode(page, bt.pageSize())
}

// WriteNode flushes node's header fields to its backing page and asks the
// pager to persist it. The cell-offset array and cell bodies are already
// written in place by InsertCell/RemoveCellBlock.
func (bt *BTree) WriteNode(node *Node) error {
	node.writeHeader()
	return bt.pager.WritePage(node.Page)
}

// FreeNode releases the page buffer a node borrowed from the pager. After
// this call the node must not be used again.
func (bt *BTree) FreeNode(node *Node) {
	bt.pager.ReleasePage(node.Page)
}

func (bt *BTree) pageSize() uint16 {
	return bt.pager.PageSize()
}
