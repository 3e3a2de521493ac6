package btree

import "encoding/binary"

// Fixed-width big-endian primitives used throughout the page format, plus
// the 4-byte zero-padded "varint32" used only for table-cell key and
// data-size fields. This is not a real variable-length varint — it is
// always exactly four bytes — but the name and on-disk shape are kept
// byte-for-byte compatible with the format this engine reads and writes.

func get1(b []byte) uint8 {
	return b[0]
}

func put1(b []byte, v uint8) {
	b[0] = v
}

func get2(b []byte) uint16 {
	return binary.BigEndian.Uint16(b[:2])
}

func put2(b []byte, v uint16) {
	binary.BigEndian.PutUint16(b[:2], v)
}

func get4(b []byte) uint32 {
	return binary.BigEndian.Uint32(b[:4])
}

func put4(b []byte, v uint32) {
	binary.BigEndian.PutUint32(b[:4], v)
}

// getVarint32 reads the chidb "varint32": exactly four big-endian bytes.
func getVarint32(b []byte) uint32 {
	return get4(b)
}

// putVarint32 writes the chidb "varint32": exactly four big-endian bytes.
func putVarint32(b []byte, v uint32) {
	put4(b, v)
}
