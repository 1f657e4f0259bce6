// Package barcode implements the scan reconciliation engine: it classifies raw
// barcodes, applies them to the working set of operation lines of a transfer
// and compiles the accumulated edits into save commands.
package barcode

import "errors"

// Fatal errors. Every recoverable condition is reported through the Notifier
// instead.
var (
	// ErrMissingReference means a record that must be known to the cache is absent.
	ErrMissingReference = errors.New("missing reference data")
	// ErrCorruptEvent means a classified scan event is internally inconsistent.
	ErrCorruptEvent = errors.New("corrupt scan event")
	// ErrMalformedResponse means the backend answered with an unusable payload.
	ErrMalformedResponse = errors.New("malformed backend response")
	// ErrLineNotFound means an operation referenced an unknown virtual id.
	ErrLineNotFound = errors.New("line not found")
	// ErrClosed means the transfer is done, cancelled or the session was exited.
	ErrClosed = errors.New("picking is closed")
)
