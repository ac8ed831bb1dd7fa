package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/pstkit/rtf"
)

func TestDecompressRTFBodyUncompressed(t *testing.T) {
	raw := []byte("{\\rtf1 hello}")
	compressed := rtf.CompressUncompressed(raw)

	body, err := decompressRTFBody(compressed)
	require.NoError(t, err)
	assert.Equal(t, BodyRTF, body.Format)
	assert.Equal(t, string(raw), body.Text)
}

func TestDecompressRTFBodyLiteral(t *testing.T) {
	raw := []byte("plain rtf body")
	compressed := rtf.CompressLiteral(raw)

	body, err := decompressRTFBody(compressed)
	require.NoError(t, err)
	assert.Equal(t, string(raw), body.Text)
}
