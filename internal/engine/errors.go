package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNoCursors is returned by operations that require at least one
	// active cursor.
	ErrNoCursors = errors.New("engine: no active cursors")

	// ErrInTransaction is returned by operations that may not nest
	// (PerformTransaction calling PerformTransaction).
	ErrInTransaction = errors.New("engine: already inside a transaction")

	// ErrNotInTransaction is returned by transaction-only helpers called
	// outside PerformTransaction.
	ErrNotInTransaction = errors.New("engine: not inside a transaction")
)
