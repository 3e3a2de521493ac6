package btree

import (
	"errors"

	"github.com/jmininger/chidb/internal/pager"
)

// Error taxonomy for the B-tree engine and the pager it relies on. Failures
// are reported as returned errors; where a failure belongs to one of these
// categories, the error wraps the matching sentinel (test with errors.Is).
// Some internal-consistency failures, such as a free-space shortfall in
// InsertCell, are plain errors that wrap none of them.
var (
	// ErrMisuse is the sentinel for nil arguments or other caller mistakes.
	// No operation in this package returns it; an out-of-range cell index
	// is reported as ErrBadCellNo.
	ErrMisuse = errors.New("chidb: misuse")

	// ErrBadPageNo is surfaced as-is from the pager when a page number is
	// out of range.
	ErrBadPageNo = pager.ErrBadPageNo

	// ErrBadCellNo is returned when a cell index is >= n_cells.
	ErrBadCellNo = errors.New("chidb: bad cell number")

	// ErrNoHeader is returned by the pager when asked to read the header
	// of an empty file. Only observed during Open.
	ErrNoHeader = pager.ErrNoHeader

	// ErrCorruptHeader is returned when the fixed fields of the 100-byte
	// file header don't match the expected template.
	ErrCorruptHeader = errors.New("chidb: corrupt header")

	// ErrDuplicate is returned when an insert's key already exists
	// somewhere in the target B-tree.
	ErrDuplicate = errors.New("chidb: duplicate key")

	// ErrNotFound names the no-such-key outcome. Find and FindIndex do not
	// return it: they report a missing key through their boolean result.
	ErrNotFound = errors.New("chidb: not found")

	// ErrTooLarge is returned when a table-leaf cell's data can never fit
	// in a leaf of the database's page size.
	ErrTooLarge = errors.New("chidb: data too large for page")
)
