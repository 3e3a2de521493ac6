// Package pager implements the external collaborator the B-tree engine in
// internal/btree relies on for page caching, allocation, and raw file I/O.
// The engine only ever talks to the Pager interface; this file provides the
// concrete, disk-backed implementation.
package pager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// HeaderSize is the size, in bytes, of the file header reserved at the
// start of page 1.
const HeaderSize = 100

// DefaultPageSize is used when a new database file is created and no page
// size has been negotiated yet.
const DefaultPageSize = 1024

// ErrNoHeader is returned by ReadHeader when the underlying file is empty.
var ErrNoHeader = errors.New("pager: no header")

// ErrBadPageNo is returned when a page number is outside the range the
// pager has allocated.
var ErrBadPageNo = errors.New("pager: bad page number")

// Page is an in-memory, mutable copy of one page of the database file. The
// B-tree engine borrows a Page for the lifetime of a Node handle and mutates
// Data in place; none of those mutations reach disk until WritePage is
// called.
type Page struct {
	Number uint32
	Data   []byte
}

// Pager is the interface the B-tree engine requires of its storage
// backend. It owns page caching, allocation of new pages, and all file
// I/O; the engine never touches the file directly.
type Pager interface {
	// ReadHeader returns the raw 100-byte file header. It returns
	// ErrNoHeader if the file is empty.
	ReadHeader() ([HeaderSize]byte, error)

	// SetPageSize fixes the page size used by subsequent ReadPage,
	// WritePage and AllocatePage calls.
	SetPageSize(n uint16)

	// PageSize returns the page size currently in effect.
	PageSize() uint16

	// ReadPage returns a handle to page n's buffer. Reading an
	// unallocated page is ErrBadPageNo.
	ReadPage(n uint32) (*Page, error)

	// WritePage persists all bytes of p to disk.
	WritePage(p *Page) error

	// AllocatePage grows the file by one page and returns its number.
	AllocatePage() (uint32, error)

	// ReleasePage relinquishes a page buffer borrowed via ReadPage. The
	// disk-backed pager's cache keeps the buffer around regardless, so
	// there this is a no-op; it exists so callers don't
	// need to care whether a given Pager implementation pools buffers.
	ReleasePage(p *Page)

	// Close releases the underlying file.
	Close() error
}

// FilePager is a Pager backed by a single os.File, with a small in-memory
// page cache guarded by a mutex (single-writer discipline: the mutex
// protects the cache's bookkeeping, not concurrent mutation of a page's
// bytes — callers must still serialize calls into the pager).
type FilePager struct {
	mu         sync.RWMutex
	file       *os.File
	pageSize   uint16
	totalPages uint32
	cache      map[uint32]*Page
}

// Open opens path for paged access, creating it if it does not exist. The
// returned pager has page size DefaultPageSize until SetPageSize is called;
// callers that open an existing file should read its header first and call
// SetPageSize with the recorded size before doing anything else.
func Open(path string) (*FilePager, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("pager: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pager: stat %s: %w", path, err)
	}

	p := &FilePager{
		file:     f,
		pageSize: DefaultPageSize,
		cache:    make(map[uint32]*Page),
	}
	if info.Size() > 0 {
		p.totalPages = uint32(info.Size()) / uint32(p.pageSize)
	}
	return p, nil
}

// IsEmpty reports whether the backing file has zero length.
func (p *FilePager) IsEmpty() (bool, error) {
	info, err := p.file.Stat()
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

// ReadHeader reads the first HeaderSize bytes of the file. This can be
// called before the page size is known, since the header always occupies
// the first 100 bytes regardless of page size.
func (p *FilePager) ReadHeader() ([HeaderSize]byte, error) {
	var buf [HeaderSize]byte

	empty, err := p.IsEmpty()
	if err != nil {
		return buf, err
	}
	if empty {
		return buf, ErrNoHeader
	}

	if _, err := p.file.ReadAt(buf[:], 0); err != nil && !errors.Is(err, io.EOF) {
		return buf, fmt.Errorf("pager: read header: %w", err)
	}
	return buf, nil
}

// SetPageSize fixes the page size used by subsequent ReadPage/WritePage/
// AllocatePage calls and recomputes the page count of an already-existing
// file against it. Must be called before any ReadPage/AllocatePage call
// when opening a pre-existing file whose page size differs from
// DefaultPageSize.
func (p *FilePager) SetPageSize(n uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pageSize = n

	if info, err := p.file.Stat(); err == nil && info.Size() > 0 {
		p.totalPages = uint32(info.Size()) / uint32(n)
	}
}

func (p *FilePager) PageSize() uint16 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pageSize
}

func (p *FilePager) offset(n uint32) int64 {
	return int64(n-1) * int64(p.pageSize)
}

func (p *FilePager) pageIsValid(n uint32) bool {
	return n >= 1 && n <= p.totalPages
}

// ReadPage returns the in-memory copy of page n, reading through the cache
// if it isn't already resident.
func (p *FilePager) ReadPage(n uint32) (*Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.pageIsValid(n) {
		return nil, fmt.Errorf("%w: %d", ErrBadPageNo, n)
	}

	if cached, ok := p.cache[n]; ok {
		return cached, nil
	}

	data := make([]byte, p.pageSize)
	if _, err := p.file.ReadAt(data, p.offset(n)); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("pager: read page %d: %w", n, err)
	}

	page := &Page{Number: n, Data: data}
	p.cache[n] = page
	return page, nil
}

// WritePage persists page.Data to disk and refreshes the cache entry.
func (p *FilePager) WritePage(page *Page) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.pageIsValid(page.Number) {
		return fmt.Errorf("%w: %d", ErrBadPageNo, page.Number)
	}
	if uint16(len(page.Data)) != p.pageSize {
		return fmt.Errorf("pager: write page %d: expected %d bytes, got %d", page.Number, p.pageSize, len(page.Data))
	}

	if _, err := p.file.WriteAt(page.Data, p.offset(page.Number)); err != nil {
		return fmt.Errorf("pager: write page %d: %w", page.Number, err)
	}

	p.cache[page.Number] = page
	return nil
}

// AllocatePage grows the file by one page and returns its number. The new
// page is not zeroed on disk until the caller writes it; ReadPage on a
// freshly allocated but never-written page returns an all-zero buffer.
func (p *FilePager) AllocatePage() (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalPages++
	n := p.totalPages
	p.cache[n] = &Page{Number: n, Data: make([]byte, p.pageSize)}
	return n, nil
}

// ReleasePage does nothing for FilePager. The FilePager cache is
// size-unbounded for the lifetime of an open file, with no eviction policy
// and no per-page tracking, so there is nothing to release; it exists to
// satisfy the Pager interface and so call sites don't need to
// special-case this implementation.
func (p *FilePager) ReleasePage(page *Page) {}

// Close releases the underlying file.
func (p *FilePager) Close() error {
	return p.file.Close()
}
