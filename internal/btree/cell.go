package btree

import "fmt"

// indexCellSchema is the fixed 4-byte record-schema prefix stamped on every
// index cell: emitted verbatim on write, ignored on read.
var indexCellSchema = [4]byte{0x0B, 0x03, 0x04, 0x04}

// Cell is the in-memory, tagged-union representation of a single cell. Not
// every field is meaningful for every Type:
//   - TableInternal: ChildPage, Key
//   - TableLeaf: Key, Data
//   - IndexInternal: ChildPage, Key (idx_key), PKKey (pk_key)
//   - IndexLeaf: Key (idx_key), PKKey (pk_key)
type Cell struct {
	Type      NodeType
	Key       uint32
	ChildPage uint32
	PKKey     uint32
	Data      []byte
}

// cellSize returns the on-disk size, in bytes, of cell as encoded for typ.
func cellSize(typ NodeType, cell Cell) uint16 {
	switch typ {
	case TableInternal:
		return 8
	case TableLeaf:
		return 8 + uint16(len(cell.Data))
	case IndexInternal:
		return 16
	case IndexLeaf:
		return 12
	default:
		return 0
	}
}

// encodeCell writes cell into buf, which must be exactly cellSize(typ,
// cell) bytes long.
func encodeCell(typ NodeType, cell Cell, buf []byte) {
	switch typ {
	case TableInternal:
		put4(buf[0:4], cell.ChildPage)
		putVarint32(buf[4:8], cell.Key)
	case TableLeaf:
		putVarint32(buf[0:4], uint32(len(cell.Data)))
		putVarint32(buf[4:8], cell.Key)
		copy(buf[8:8+len(cell.Data)], cell.Data)
	case IndexInternal:
		put4(buf[0:4], cell.ChildPage)
		copy(buf[4:8], indexCellSchema[:])
		put4(buf[8:12], cell.Key)
		put4(buf[12:16], cell.PKKey)
	case IndexLeaf:
		copy(buf[0:4], indexCellSchema[:])
		put4(buf[4:8], cell.Key)
		put4(buf[8:12], cell.PKKey)
	}
}

// decodeCell parses a cell of the given type starting at buf[0]. For
// TableLeaf cells, Data aliases buf: callers must not retain it past the
// owning node's release.
func decodeCell(typ NodeType, buf []byte) (Cell, error) {
	switch typ {
	case TableInternal:
		return Cell{
			Type:      typ,
			ChildPage: get4(buf[0:4]),
			Key:       getVarint32(buf[4:8]),
		}, nil
	case TableLeaf:
		size := getVarint32(buf[0:4])
		key := getVarint32(buf[4:8])
		return Cell{
			Type: typ,
			Key:  key,
			Data: buf[8 : 8+size],
		}, nil
	case IndexInternal:
		return Cell{
			Type:      typ,
			ChildPage: get4(buf[0:4]),
			Key:       get4(buf[8:12]),
			PKKey:     get4(buf[12:16]),
		}, nil
	case IndexLeaf:
		return Cell{
			Type:  typ,
			Key:   get4(buf[4:8]),
			PKKey: get4(buf[8:12]),
		}, nil
	default:
		return Cell{}, fmt.Errorf("btree: decode cell: invalid node type %#x", uint8(typ))
	}
}
