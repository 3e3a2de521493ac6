package btree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackThenVerifyHeaderRoundTrips(t *testing.T) {
	buf := make([]byte, HeaderSize)
	PackHeader(buf, 1024, 0, 0, 0)

	pageSize, err := VerifyHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(1024), pageSize)
}

func TestVerifyHeaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	PackHeader(buf, 1024, 0, 0, 0)
	copy(buf[0:16], []byte("not a chidb file"))

	_, err := VerifyHeader(buf)
	assert.ErrorIs(t, err, ErrCorruptHeader)
}

func TestVerifyHeaderRejectsBadFixedBytes(t *testing.T) {
	buf := make([]byte, HeaderSize)
	PackHeader(buf, 1024, 0, 0, 0)
	buf[21] = 0xFF // corrupt the fixed byte at offset 21 (expected 0x40)

	_, err := VerifyHeader(buf)
	assert.ErrorIs(t, err, ErrCorruptHeader)
}

func TestVerifyHeaderRejectsShortBuffer(t *testing.T) {
	_, err := VerifyHeader(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrCorruptHeader)
}

func TestIsValidPageSize(t *testing.T) {
	assert.True(t, IsValidPageSize(512))
	assert.True(t, IsValidPageSize(1024))
	assert.True(t, IsValidPageSize(32768))
	assert.False(t, IsValidPageSize(511))
	assert.False(t, IsValidPageSize(0))
	assert.False(t, IsValidPageSize(1000))
}
