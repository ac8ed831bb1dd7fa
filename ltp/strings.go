package ltp

import (
	"errors"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/mbranch/pstkit/internal/format"
)

var errNotAString = errors.New("ltp: value is not a string property")

// DecodeString8 decodes a PtypString8 value's raw bytes using Windows-1252
// (the code page PST stores ANSI strings under, in the absence of a
// per-store code-page override), matching the teacher's use of
// charmap.Windows1252 for NK/VK name decoding.
func DecodeString8(raw []byte) (string, error) {
	return charmap.Windows1252.NewDecoder().String(string(raw))
}

// DecodeUnicodeString decodes a PtypString value's raw bytes, which are
// stored as UTF-16LE.
func DecodeUnicodeString(raw []byte) (string, error) {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(string(raw))
}

// DecodeStringValue dispatches on v.Type to the correct string codec,
// returning an error for non-string property types.
func DecodeStringValue(v PropertyValue) (string, error) {
	switch v.Type {
	case format.PtypString8:
		return DecodeString8(v.Raw)
	case format.PtypString:
		return DecodeUnicodeString(v.Raw)
	default:
		return "", errNotAString
	}
}
