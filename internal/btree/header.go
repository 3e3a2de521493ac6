package btree

import "bytes"

// HeaderSize is the size, in bytes, of the file header that occupies the
// start of page 1.
const HeaderSize = 100

// magicBytes is the fixed 16-byte prefix of the file header.
var magicBytes = []byte("SQLite format 3\x00")

// DefaultPageCacheSize is written into the header's page-cache-size hint on
// creation; it has no effect on this engine's own pager, it is only carried
// for on-disk compatibility with the reference format.
const DefaultPageCacheSize = 20000

// PackHeader writes the fixed 100-byte file header layout into the first
// HeaderSize bytes of buf. fileChangeCounter, schemaVersion and
// userCookie are all zero on creation; callers that want to bump them after
// the fact can re-pack with non-zero values.
func PackHeader(buf []byte, pageSize uint16, fileChangeCounter, schemaVersion, userCookie uint32) {
	_ = buf[:HeaderSize] // bounds check hint

	copy(buf[0:16], magicBytes)
	put2(buf[16:18], pageSize)
	put1(buf[18:19], 0x01)
	put1(buf[19:20], 0x01)
	put1(buf[20:21], 0x00)
	put1(buf[21:22], 0x40)
	put1(buf[22:23], 0x20)
	put1(buf[23:24], 0x20)
	put4(buf[24:28], fileChangeCounter)
	put4(buf[32:36], 0)
	put4(buf[36:40], 0)
	put4(buf[40:44], schemaVersion)
	put4(buf[44:48], 1)
	put4(buf[48:52], DefaultPageCacheSize)
	put4(buf[52:56], 0)
	put4(buf[56:60], 1)
	put4(buf[60:64], userCookie)
	put4(buf[64:68], 0)
	for i := 68; i < HeaderSize; i++ {
		buf[i] = 0
	}
}

// IsValidPageSize reports whether p is a power of two in the range the
// 2-byte page-size field and offset arithmetic can support.
func IsValidPageSize(p uint16) bool {
	if p < 512 {
		return false
	}
	return p&(p-1) == 0
}

// VerifyHeader checks that every fixed byte/word of buf's file header
// matches the template written by PackHeader, and that the recorded page
// size is valid. It returns the page size on success.
func VerifyHeader(buf []byte) (uint16, error) {
	if len(buf) < HeaderSize {
		return 0, ErrCorruptHeader
	}

	if !bytes.Equal(buf[0:16], magicBytes) {
		return 0, ErrCorruptHeader
	}

	pageSize := get2(buf[16:18])
	if !IsValidPageSize(pageSize) {
		return 0, ErrCorruptHeader
	}

	switch {
	case get1(buf[18:19]) != 0x01,
		get1(buf[19:20]) != 0x01,
		get1(buf[20:21]) != 0x00,
		get1(buf[21:22]) != 0x40,
		get1(buf[22:23]) != 0x20,
		get1(buf[23:24]) != 0x20,
		get4(buf[32:36]) != 0,
		get4(buf[36:40]) != 0,
		get4(buf[44:48]) != 1,
		get4(buf[48:52]) != DefaultPageCacheSize,
		get4(buf[52:56]) != 0,
		get4(buf[56:60]) != 1,
		get4(buf[64:68]) != 0:
		return 0, ErrCorruptHeader
	}

	return pageSize, nil
}
