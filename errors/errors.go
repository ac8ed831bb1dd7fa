// Package errors defines the typed error sum used across pstkit.
//
// ndb, rtf, the public store package and ltp's PC/TC/HN code construct
// *Error so callers can branch on Kind rather than on error text.
// internal/format returns its own sentinel errors, which ndb wraps, and
// ltp reports bad HIDs and BTH headers as fmt-wrapped ltp.ErrInvalidHid and
// ltp.ErrInvalidBthHeader, which can reach store callers unwrapped.
package errors

import goerrors "errors"

// Kind classifies an Error so callers can branch on intent rather than text.
type Kind int

const (
	// KindIO covers failures in the underlying byte source (read/seek errors).
	KindIO Kind = iota
	// KindTruncated indicates a requested range exceeds the available data.
	KindTruncated
	// KindBadMagic indicates a header signature didn't match.
	KindBadMagic
	// KindUnsupportedVersion indicates a recognized but unsupported file variant.
	KindUnsupportedVersion
	// KindCorrupt indicates a structural invariant violation (CRC mismatch,
	// signature mismatch, key-sort violation, cycle).
	KindCorrupt
	// KindNotFound indicates a requested key was absent from a tree or map.
	KindNotFound
	// KindInvalidHid indicates an HID referenced an allocation outside its
	// heap page's bounds.
	KindInvalidHid
	// KindInvalidBthHeader indicates a BTH header had out-of-range key/value sizes.
	KindInvalidBthHeader
	// KindUnknownCompression indicates an RTF header's compType wasn't MELA or LZFu.
	KindUnknownCompression
	// KindPasswordRequired indicates a password-gated store was opened without one.
	KindPasswordRequired
	// KindPasswordIncorrect indicates a supplied password failed CRC validation.
	KindPasswordIncorrect
	// KindDisposed indicates an operation on a File that has been closed.
	KindDisposed
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindTruncated:
		return "Truncated"
	case KindBadMagic:
		return "BadMagic"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindCorrupt:
		return "Corrupt"
	case KindNotFound:
		return "NotFound"
	case KindInvalidHid:
		return "InvalidHid"
	case KindInvalidBthHeader:
		return "InvalidBthHeader"
	case KindUnknownCompression:
		return "UnknownCompression"
	case KindPasswordRequired:
		return "PasswordRequired"
	case KindPasswordIncorrect:
		return "PasswordIncorrect"
	case KindDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

// Error is a typed error with an optional underlying cause and reason.
type Error struct {
	Kind   Kind
	Msg    string
	Reason string // extra structural detail, e.g. "block crc" for KindCorrupt
	Err    error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.String() + ": " + e.Msg
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an *Error of the given kind, wrapping cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Corrupt constructs a KindCorrupt error carrying a structural reason, e.g.
// Corrupt("block crc").
func Corrupt(reason string) *Error {
	return &Error{Kind: KindCorrupt, Msg: "corrupt structure", Reason: reason}
}

// Is reports whether err (or any error it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if goerrors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// Sentinels for common, argument-less cases.
var (
	ErrNotFound = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrDisposed = &Error{Kind: KindDisposed, Msg: "file has been closed"}
)
