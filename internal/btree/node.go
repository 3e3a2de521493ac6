package btree

import (
	"fmt"

	"github.com/jmininger/chidb/internal/pager"
)

// NodeType identifies which of the four cell layouts a node's page holds.
type NodeType uint8

const (
	TableInternal NodeType = 0x05
	TableLeaf     NodeType = 0x0D
	IndexInternal NodeType = 0x02
	IndexLeaf     NodeType = 0x0A
)

func (t NodeType) String() string {
	switch t {
	case TableInternal:
		return "table-internal"
	case TableLeaf:
		return "table-leaf"
	case IndexInternal:
		return "index-internal"
	case IndexLeaf:
		return "index-leaf"
	default:
		return fmt.Sprintf("invalid(%#x)", uint8(t))
	}
}

// IsInternal reports whether t is one of the two internal node types.
func (t NodeType) IsInternal() bool {
	return t == TableInternal || t == IndexInternal
}

// IsLeaf reports whether t is one of the two leaf node types.
func (t NodeType) IsLeaf() bool {
	return t == TableLeaf || t == IndexLeaf
}

func (t NodeType) valid() bool {
	switch t {
	case TableInternal, TableLeaf, IndexInternal, IndexLeaf:
		return true
	default:
		return false
	}
}

// headerSize returns the size, in bytes, of the node header: 12 for
// internal nodes (extra 4-byte right_page field), 8 for leaves.
func (t NodeType) headerSize() uint16 {
	if t.IsInternal() {
		return 12
	}
	return 8
}

// isHeaderPage reports whether npage is page 1, which reserves the first
// HeaderSize bytes of the page for the file header.
func isHeaderPage(npage uint32) bool {
	return npage == 1
}

// startOffset returns the byte offset, from the start of the page, at
// which a node's header begins: HeaderSize for page 1, zero otherwise.
func startOffset(npage uint32) uint16 {
	if isHeaderPage(npage) {
		return HeaderSize
	}
	return 0
}

// Node is the in-memory handle to a B-tree node. It borrows a page buffer
// from the pager for its lifetime; mutations are visible on disk only
// after WriteNode is called (see engine.go), and the buffer must be
// released back to the pager via FreeNode when the caller is done with it.
type Node struct {
	Page *pager.Page

	Type        NodeType
	FreeOffset  uint16
	NCells      uint16
	CellsOffset uint16
	RightPage   uint32

	start     uint16 // S: byte offset of the node header within the page
	cellArray uint16 // S + headerSize: byte offset of the cell-offset array
	pageSize  uint16
}

// InitEmpty initializes page as an empty node of the given type: writes the
// node-header fields directly into page.Data (for internal nodes this
// includes a zero right_page; the slot is only meaningful once an algorithm
// sets it), and returns the resulting handle. The caller is responsible for
// persisting the page afterward.
func InitEmpty(page *pager.Page, typ NodeType, pageSize uint16) *Node {
	s := startOffset(page.Number)
	n := &Node{
		Page:        page,
		Type:        typ,
		FreeOffset:  s + typ.headerSize(),
		NCells:      0,
		CellsOffset: pageSize,
		RightPage:   0,
		start:       s,
		cellArray:   s + typ.headerSize(),
		pageSize:    pageSize,
	}
	n.writeHeader()
	return n
}

// LoadNode parses the node header and cell-offset array location out of an
// already-read page buffer.
func LoadNode(page *pager.Page, pageSize uint16) (*Node, error) {
	if len(page.Data) < int(pageSize) {
		return nil, fmt.Errorf("btree: page %d: short buffer", page.Number)
	}

	s := startOffset(page.Number)
	data := page.Data

	typ := NodeType(get1(data[s : s+1]))
	if !typ.valid() {
		return nil, fmt.Errorf("btree: page %d: %w: invalid node type %#x", page.Number, ErrCorruptHeader, uint8(typ))
	}

	n := &Node{
		Page:        page,
		Type:        typ,
		FreeOffset:  get2(data[s+1 : s+3]),
		NCells:      get2(data[s+3 : s+5]),
		CellsOffset: get2(data[s+5 : s+7]),
		start:       s,
		cellArray:   s + typ.headerSize(),
		pageSize:    pageSize,
	}
	if typ.IsInternal() {
		n.RightPage = get4(data[s+8 : s+12])
	}
	return n, nil
}

// writeHeader flushes the node's header fields (and right_page, for
// internal nodes) into the page buffer. The cell-offset array and cell
// bodies are written directly into the page by InsertCell/RemoveCellBlock,
// so this only needs to cover the fixed header.
func (n *Node) writeHeader() {
	data := n.Page.Data
	s := n.start
	put1(data[s:s+1], uint8(n.Type))
	put2(data[s+1:s+3], n.FreeOffset)
	put2(data[s+3:s+5], n.NCells)
	put2(data[s+5:s+7], n.CellsOffset)
	data[s+7] = 0
	if n.Type.IsInternal() {
		put4(data[s+8:s+12], n.RightPage)
	}
}

// offsetSlot returns the byte range of the i'th cell-offset array entry.
func (n *Node) offsetSlot(i uint16) []byte {
	o := n.cellArray + 2*i
	return n.Page.Data[o : o+2]
}

// GetCell reads and decodes the cell at logical position i.
func (n *Node) GetCell(i uint16) (Cell, error) {
	if i >= n.NCells {
		return Cell{}, fmt.Errorf("btree: cell %d: %w", i, ErrBadCellNo)
	}
	cellOffset := get2(n.offsetSlot(i))
	cell, err := decodeCell(n.Type, n.Page.Data[cellOffset:])
	if err != nil {
		return Cell{}, err
	}
	return cell, nil
}

// IsFull reports whether there is not enough free space left in the node
// to insert cell.
func (n *Node) IsFull(cell Cell) bool {
	size := cellSize(n.Type, cell)
	free := n.CellsOffset - n.FreeOffset
	return size+2 > free
}

// InsertCell inserts cell at logical position i, shifting the cell-offset
// array suffix forward. Assumes IsFull(cell) was checked by the caller and
// is false; a free-space shortfall here indicates a bug in the caller or
// on-disk corruption, so it is reported rather than producing a malformed
// page.
func (n *Node) InsertCell(i uint16, cell Cell) error {
	if i > n.NCells {
		return fmt.Errorf("btree: insert at %d with %d cells: %w", i, n.NCells, ErrBadCellNo)
	}

	size := cellSize(n.Type, cell)
	free := n.CellsOffset - n.FreeOffset
	if size+2 > free {
		return fmt.Errorf("btree: insert cell: need %d bytes, only %d free", size+2, free)
	}

	data := n.Page.Data
	o := n.CellsOffset - size
	encodeCell(n.Type, cell, data[o:o+size])

	slot := n.cellArray + 2*i
	if i < n.NCells {
		copy(data[slot+2:], data[slot:slot+2*(n.NCells-i)])
	}
	put2(data[slot:slot+2], o)

	n.CellsOffset = o
	n.FreeOffset += 2
	n.NCells++
	n.writeHeader()
	return nil
}

// RemoveCellBlock reclaims the bytes of cell i's body by shifting every
// cell body below it up by the removed cell's size. It does not touch the
// cell-offset array slot for i; callers (split, the only caller) collapse
// the offset array themselves, via collapseOffsetArray, once they've
// removed every cell they're moving out.
func (n *Node) RemoveCellBlock(i uint16) error {
	cell, err := n.GetCell(i)
	if err != nil {
		return err
	}
	size := cellSize(n.Type, cell)

	data := n.Page.Data
	oi := get2(n.offsetSlot(i))

	copy(data[n.CellsOffset+size:oi+size], data[n.CellsOffset:oi])

	for j := uint16(0); j < n.NCells; j++ {
		if j == i {
			continue
		}
		slot := n.offsetSlot(j)
		oj := get2(slot)
		if oj < oi {
			put2(slot, oj+size)
		}
	}

	n.CellsOffset += size
	n.writeHeader()
	return nil
}

// collapseOffsetArray drops the first `removed` entries of the cell-offset
// array, shifting the remaining entries down to the front and shrinking
// NCells and FreeOffset accordingly. Callers must have already reclaimed
// those entries' cell bodies via RemoveCellBlock.
func (n *Node) collapseOffsetArray(removed uint16) {
	if removed == 0 {
		return
	}
	remaining := n.NCells - removed
	data := n.Page.Data
	src := n.cellArray + 2*removed
	dst := n.cellArray
	copy(data[dst:dst+2*remaining], data[src:src+2*remaining])
	n.NCells = remaining
	n.FreeOffset -= 2 * removed
}
