package store

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/mbranch/pstkit/internal/crc32pst"
)

// passwordEncodings is the fixed grid of byte encodings a stored password
// CRC might have been computed over: {UTF-16LE, UTF-8, ASCII} x
// {with, without trailing NUL} (spec §9 "Global-style password encodings":
// "encode it as a static table rather than reflection").
func passwordEncodings(pw string) [][]byte {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16Str, _ := utf16le.NewEncoder().String(pw)
	utf16Bytes := []byte(utf16Str)

	var out [][]byte
	out = append(out, utf16Bytes)
	// UTF-16's terminator is a wide NUL (two zero bytes); UTF-8/ASCII's is
	// a single zero byte.
	out = append(out, append(append([]byte{}, utf16Bytes...), 0, 0))

	utf8Bytes := []byte(pw)
	out = append(out, utf8Bytes)
	out = append(out, append(append([]byte{}, utf8Bytes...), 0))

	// ASCII is a distinct encoding from UTF-8 only when pw has non-ASCII
	// runes; for the common case they coincide, but compute it separately
	// for completeness with the spec's three-encoding enumeration.
	ascii := toASCII(pw)
	out = append(out, ascii)
	out = append(out, append(append([]byte{}, ascii...), 0))
	return out
}

func toASCII(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0x7F {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return b
}

// passwordMatches reports whether want (a stored 32-bit CRC) matches pw
// under any of the spec's encoding variants, including the uppercase
// fallback when pw's upper form differs from pw itself (spec §4.8 step 3,
// P7).
func passwordMatches(want uint32, pw string) bool {
	if matchesAnyEncoding(want, pw) {
		return true
	}
	upper := strings.ToUpper(pw)
	if upper != pw && matchesAnyEncoding(want, upper) {
		return true
	}
	return false
}

func matchesAnyEncoding(want uint32, pw string) bool {
	for _, enc := range passwordEncodings(pw) {
		if crc32pst.Matches(enc, want) {
			return true
		}
	}
	return false
}
