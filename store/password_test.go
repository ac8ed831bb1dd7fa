package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbranch/pstkit/internal/crc32pst"
)

func TestPasswordMatchesUTF16LE(t *testing.T) {
	utf16le := make([]byte, 0)
	for _, r := range "secret" {
		utf16le = append(utf16le, byte(r), 0)
	}
	want := crc32pst.Checksum(utf16le)
	assert.True(t, passwordMatches(want, "secret"))
}

func TestPasswordMatchesTrailingNUL(t *testing.T) {
	raw := append([]byte("secret"), 0)
	want := crc32pst.Checksum(raw)
	assert.True(t, passwordMatches(want, "secret"))
}

func TestPasswordMatchesUppercaseFallback(t *testing.T) {
	want := crc32pst.Checksum([]byte("SECRET"))
	assert.True(t, passwordMatches(want, "secret"))
}

func TestPasswordDoesNotMatch(t *testing.T) {
	want := crc32pst.Checksum([]byte("secret"))
	assert.False(t, passwordMatches(want, "wrong"))
}
