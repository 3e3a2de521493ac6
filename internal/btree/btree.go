package btree

import "fmt"

// Find searches the table B-tree rooted at rootPage for key, returning its
// cell and true if present.
func (bt *BTree) Find(rootPage uint32, key uint32) (Cell, bool, error) {
	return bt.findTable(rootPage, key)
}

func (bt *BTree) findTable(npage uint32, key uint32) (Cell, bool, error) {
	node, err := bt.GetNodeByPage(npage)
	if err != nil {
		return Cell{}, false, err
	}

	if node.Type == TableLeaf {
		i, found := searchCells(node, func(c Cell) int { return cmpUint32(key, c.Key) })
		if !found {
			return Cell{}, false, nil
		}
		cell, err := node.GetCell(i)
		return cell, err == nil, err
	}

	child, err := chooseChildTable(node, key)
	if err != nil {
		return Cell{}, false, err
	}
	return bt.findTable(child, key)
}

// FindIndex searches the index B-tree rooted at rootPage for the entry
// whose (key, pkKey) pair matches exactly.
func (bt *BTree) FindIndex(rootPage uint32, key, pkKey uint32) (Cell, bool, error) {
	node, err := bt.GetNodeByPage(rootPage)
	if err != nil {
		return Cell{}, false, err
	}

	if node.Type == IndexLeaf {
		i, found := searchCells(node, func(c Cell) int { return cmpIndexKey(key, pkKey, c) })
		if !found {
			return Cell{}, false, nil
		}
		cell, err := node.GetCell(i)
		return cell, err == nil, err
	}

	child, err := chooseChildIndex(node, key, pkKey)
	if err != nil {
		return Cell{}, false, err
	}
	return bt.FindIndex(child, key, pkKey)
}

// searchCells does a linear scan for the first cell cmp reports as >= the
// target (cmp returns target-cell, so cmp(c) <= 0 once c has reached or
// passed target), returning its index and whether it is an exact match.
// Nodes in this engine are small (one 1024-byte page), so a linear scan is
// simpler than a binary search and costs nothing measurable in practice.
func searchCells(node *Node, cmp func(Cell) int) (uint16, bool) {
	for i := uint16(0); i < node.NCells; i++ {
		c, err := node.GetCell(i)
		if err != nil {
			return 0, false
		}
		d := cmp(c)
		if d == 0 {
			return i, true
		}
		if d < 0 {
			return i, false
		}
	}
	return node.NCells, false
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpIndexKey(key, pkKey uint32, c Cell) int {
	if d := cmpUint32(key, c.Key); d != 0 {
		return d
	}
	return cmpUint32(pkKey, c.PKKey)
}

// chooseChildTable picks the child of an internal table node that would
// contain key: the first child whose cell key is >= key, or right_page if
// key is greater than every cell's key.
func chooseChildTable(node *Node, key uint32) (uint32, error) {
	for i := uint16(0); i < node.NCells; i++ {
		c, err := node.GetCell(i)
		if err != nil {
			return 0, err
		}
		if key <= c.Key {
			return c.ChildPage, nil
		}
	}
	return node.RightPage, nil
}

func chooseChildIndex(node *Node, key, pkKey uint32) (uint32, error) {
	for i := uint16(0); i < node.NCells; i++ {
		c, err := node.GetCell(i)
		if err != nil {
			return 0, err
		}
		if cmpIndexKey(key, pkKey, c) <= 0 {
			return c.ChildPage, nil
		}
	}
	return node.RightPage, nil
}

// InsertInTable inserts (key, data) into the table B-tree rooted at
// rootPage, returning ErrDuplicate if key is already present and
// ErrTooLarge if the cell could not fit even in an empty leaf page.
func (bt *BTree) InsertInTable(rootPage uint32, key uint32, data []byte) error {
	// An empty non-header leaf offers pageSize - 8 bytes; the cell needs an
	// 8-byte prefix plus data, and a 2-byte offset-array slot.
	if maxData := int(bt.pageSize()) - int(TableLeaf.headerSize()) - 8 - 2; len(data) > maxData {
		return fmt.Errorf("btree: insert %d bytes: %w", len(data), ErrTooLarge)
	}
	return bt.insert(rootPage, Cell{Type: TableLeaf, Key: key, Data: data}, true)
}

// InsertInIndex inserts an (idx_key, pk_key) entry into the index B-tree
// rooted at rootPage, returning ErrDuplicate if the pair is already
// present.
func (bt *BTree) InsertInIndex(rootPage uint32, key, pkKey uint32) error {
	return bt.insert(rootPage, Cell{Type: IndexLeaf, Key: key, PKKey: pkKey}, false)
}

// insert is the shared entry point for InsertInTable/InsertInIndex. It
// preemptively splits the root if it is already full before descending,
// which is the only point at which the tree's height grows.
func (bt *BTree) insert(rootPage uint32, leafCell Cell, isTable bool) error {
	root, err := bt.GetNodeByPage(rootPage)
	if err != nil {
		return err
	}

	if root.IsFull(probeCell(root.Type, leafCell)) {
		result, err := bt.split(root, true)
		if err != nil {
			return err
		}

		// root's page now holds a freshly initialized, empty internal
		// node (see split's isRoot handling); wire it directly to its two
		// children, since there is no pre-existing cell to leave in place
		// the way a non-root split's parent does. siblingPage holds the
		// lower half (routed via the promoted cell); formerRootPage holds
		// the upper half (routed via right_page).
		root, err = bt.GetNodeByPage(rootPage)
		if err != nil {
			return err
		}
		promoted := Cell{Type: root.Type, Key: result.promotedKey, PKKey: result.promotedPKKey, ChildPage: result.siblingPage}
		if err := root.InsertCell(0, promoted); err != nil {
			return err
		}
		root.RightPage = result.formerRootPage
		if err := bt.WriteNode(root); err != nil {
			return err
		}
	}

	return bt.insertNonFull(root, leafCell, isTable)
}

// probeCell builds a worst-case-sized cell of typ to test against
// IsFull/InsertCell: internal-node promotion cells are always fixed size,
// so only the leaf-cell path needs the real payload size.
func probeCell(typ NodeType, leafCell Cell) Cell {
	if typ.IsLeaf() {
		return leafCell
	}
	return Cell{Type: typ}
}

// insertNonFull inserts leafCell into the subtree rooted at node, which
// the caller guarantees is not full. Internal nodes recurse into the
// appropriate child, preemptively splitting it first if it is full — and,
// on a child split, insert the promoted cell into node itself (which
// cannot itself be full, by the precondition this function maintains at
// every level of the recursion).
func (bt *BTree) insertNonFull(node *Node, leafCell Cell, isTable bool) error {
	if node.Type.IsLeaf() {
		i, found := leafSearch(node, leafCell, isTable)
		if found {
			return fmt.Errorf("btree: insert: %w", ErrDuplicate)
		}
		if err := node.InsertCell(i, leafCell); err != nil {
			return err
		}
		return bt.WriteNode(node)
	}

	childIdx, childPage, err := chooseChildForInsert(node, leafCell, isTable)
	if err != nil {
		return err
	}

	child, err := bt.GetNodeByPage(childPage)
	if err != nil {
		return err
	}

	if child.IsFull(probeCell(child.Type, leafCell)) {
		result, err := bt.split(child, false)
		if err != nil {
			return err
		}

		promoted := promotedCellFor(node.Type, result)
		if err := node.InsertCell(childIdx, promoted); err != nil {
			return err
		}
		if err := bt.WriteNode(node); err != nil {
			return err
		}

		// Re-resolve which child leafCell belongs under, since the split
		// may have moved the target key into the new sibling.
		childIdx, childPage, err = chooseChildForInsert(node, leafCell, isTable)
		if err != nil {
			return err
		}
		child, err = bt.GetNodeByPage(childPage)
		if err != nil {
			return err
		}
	}

	return bt.insertNonFull(child, leafCell, isTable)
}

// leafSearch locates leafCell's position within a leaf node, using the
// table or index ordering as appropriate.
func leafSearch(node *Node, leafCell Cell, isTable bool) (uint16, bool) {
	if isTable {
		return searchCells(node, func(c Cell) int { return cmpUint32(leafCell.Key, c.Key) })
	}
	return searchCells(node, func(c Cell) int { return cmpIndexKey(leafCell.Key, leafCell.PKKey, c) })
}

// chooseChildForInsert returns both the logical cell index the promoted
// key would occupy (needed if this node ends up splitting a child and
// promoting into itself) and the page number of the child that should
// hold leafCell.
func chooseChildForInsert(node *Node, leafCell Cell, isTable bool) (uint16, uint32, error) {
	var i uint16
	for i = 0; i < node.NCells; i++ {
		c, err := node.GetCell(i)
		if err != nil {
			return 0, 0, err
		}
		var cmp int
		if isTable {
			cmp = cmpUint32(leafCell.Key, c.Key)
		} else {
			cmp = cmpIndexKey(leafCell.Key, leafCell.PKKey, c)
		}
		if cmp <= 0 {
			return i, c.ChildPage, nil
		}
	}
	return node.NCells, node.RightPage, nil
}

// promotedCellFor builds the cell to insert into parentType after
// splitting one of its (non-root) children: the child being split never
// changes page number in this case — it keeps the upper half and the
// parent's existing cell pointing at it is left untouched — so we only
// need a new cell pointing at the freshly allocated sibling holding the
// lower half.
func promotedCellFor(parentType NodeType, result splitResult) Cell {
	if parentType == TableInternal {
		return Cell{Type: TableInternal, Key: result.promotedKey, ChildPage: result.siblingPage}
	}
	return Cell{Type: IndexInternal, Key: result.promotedKey, PKKey: result.promotedPKKey, ChildPage: result.siblingPage}
}
