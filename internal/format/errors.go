package format

import "errors"

// Sentinel errors returned by the low-level decoders in this package. Callers
// in ndb/ltp wrap these into pstkit's errors.Error with the appropriate Kind.
var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupportedVersion indicates a recognized but unsupported file variant.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrBoundsCheck indicates a buffer access exceeded bounds.
	ErrBoundsCheck = errors.New("format: buffer bounds exceeded")
)
