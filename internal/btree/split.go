package btree

// splitResult carries the information a caller needs to link a freshly
// split-off sibling into its parent.
type splitResult struct {
	// siblingPage is the page number of the freshly allocated node holding
	// the lower half of full's cells (plus the median cell itself, for leaf
	// types, which carry real data/pk rather than just a routing key).
	siblingPage uint32
	// promotedKey is the key that must be inserted into the parent,
	// routing keys <= promotedKey to siblingPage and everything else to
	// the page that held full's upper half.
	promotedKey uint32
	// promotedPKKey is only meaningful for IndexInternal/IndexLeaf splits.
	promotedPKKey uint32
	// formerRootPage is set only when split was called with isRoot: it is
	// the page number holding full's upper half, after that content was
	// relocated off the root's page to make room for a fresh empty root. The caller
	// must treat it as the right-hand child of the new root, and reload
	// full's page to see the new root's (currently empty) content before
	// inserting the promoted cell into it.
	formerRootPage uint32
}

// split divides full, an overfull node, into two: its lower half (plus the
// median cell, for leaf types) moves to a freshly allocated sibling of the
// same type, its upper half stays behind on full's own page, and the
// median cell's key is promoted to the caller's parent to route between
// the two.
//
// If full is the root, its page number must never change: callers address
// a tree by its root page number (page 1, for the default table). split handles
// this case by relocating full's remaining (upper-half) content onto a
// freshly allocated page — by re-inserting its cells there, which lets
// each cell's offset be recomputed for a page that isn't page 1 — and then
// re-initializing full's own page as a fresh, empty internal node.
func (bt *BTree) split(full *Node, isRoot bool) (splitResult, error) {
	n := full.NCells
	m := n / 2
	if n%2 == 0 {
		m = n/2 - 1
	}

	medianCell, err := full.GetCell(m)
	if err != nil {
		return splitResult{}, err
	}

	siblingPage, err := bt.NewNode(full.Type)
	if err != nil {
		return splitResult{}, err
	}
	sibling, err := bt.GetNodeByPage(siblingPage)
	if err != nil {
		return splitResult{}, err
	}

	// Copy the lower half into sibling, in ascending order.
	lowerCount := m
	if full.Type.IsLeaf() {
		lowerCount = m + 1
	}
	for i := uint16(0); i < lowerCount; i++ {
		cell, err := full.GetCell(i)
		if err != nil {
			return splitResult{}, err
		}
		if err := sibling.InsertCell(sibling.NCells, cell); err != nil {
			return splitResult{}, err
		}
	}
	if full.Type.IsInternal() {
		sibling.RightPage = medianCell.ChildPage
		sibling.writeHeader()
	}
	if err := bt.WriteNode(sibling); err != nil {
		return splitResult{}, err
	}

	// Drop the lower half (and, for internal types, the median cell) from
	// full's cell-body area, then collapse the cell-offset array down to
	// just the remaining upper half. full's own right_page needs no
	// change: it already bounds the upper half correctly.
	for i := uint16(0); i <= m; i++ {
		if err := full.RemoveCellBlock(i); err != nil {
			return splitResult{}, err
		}
	}
	full.collapseOffsetArray(m + 1)
	full.writeHeader()

	result := splitResult{
		siblingPage:   siblingPage,
		promotedKey:   medianCell.Key,
		promotedPKKey: medianCell.PKKey,
	}

	if !isRoot {
		if err := bt.WriteNode(full); err != nil {
			return splitResult{}, err
		}
		return result, nil
	}

	formerRootPage, err := bt.NewNode(full.Type)
	if err != nil {
		return splitResult{}, err
	}
	formerRoot, err := bt.GetNodeByPage(formerRootPage)
	if err != nil {
		return splitResult{}, err
	}
	for i := uint16(0); i < full.NCells; i++ {
		cell, err := full.GetCell(i)
		if err != nil {
			return splitResult{}, err
		}
		if err := formerRoot.InsertCell(formerRoot.NCells, cell); err != nil {
			return splitResult{}, err
		}
	}
	if full.Type.IsInternal() {
		formerRoot.RightPage = full.RightPage
		formerRoot.writeHeader()
	}
	if err := bt.WriteNode(formerRoot); err != nil {
		return splitResult{}, err
	}

	if err := bt.InitEmptyNode(full.Page.Number, internalTypeFor(full.Type)); err != nil {
		return splitResult{}, err
	}
	result.formerRootPage = formerRootPage

	return result, nil
}

// internalTypeFor returns the internal node type that roots the same kind
// of tree (table or index) as t.
func internalTypeFor(t NodeType) NodeType {
	if t == TableLeaf || t == TableInternal {
		return TableInternal
	}
	return IndexInternal
}
