package rtf

import (
	"bytes"
	"testing"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/crc32pst"
	"github.com/mbranch/pstkit/internal/format"
)

func TestDecompressUncompressed(t *testing.T) {
	want := []byte("plain body text")
	stream := CompressUncompressed(want)
	got, err := Decompress(stream, true)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecompressLiteralOnly(t *testing.T) {
	want := []byte("{\\rtf1 hello world}")
	stream := CompressLiteral(want)
	got, err := Decompress(stream, true)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestDecompressBackReference exercises an overlapping, self-propagating
// back-reference copy (spec §4.7 "byte-by-byte, so overlapping runs
// self-propagate"): two literals 'A','B' followed by a length-5
// back-reference to the position 'A' was just written at, which must
// produce "ABABA" by reading bytes it is itself still writing.
func TestDecompressBackReference(t *testing.T) {
	const prelude = len(format.RTFPrelude)
	flags := byte(0x04) // bit0=literal 'A', bit1=literal 'B', bit2=back-reference
	offset := uint16(prelude)
	length := 5
	word := offset<<4 | uint16(length-2)

	payload := []byte{
		flags,
		'A', 'B',
		byte(word >> 8), byte(word), // big-endian
	}
	header := buildHeader(payload, format.RTFCompTypeLZFu, 7)
	stream := append(header, payload...)

	got, err := Decompress(stream, true)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	want := "ABABABA"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestDecompressSentinel verifies that a back-reference whose offset equals
// the dictionary's current write cursor ends the stream immediately (spec
// §4.7 "If the offset equals the current write cursor, the stream ends").
func TestDecompressSentinel(t *testing.T) {
	const prelude = len(format.RTFPrelude)
	flags := byte(0x01) // bit0=back-reference, first token
	offset := uint16(prelude)
	word := offset << 4 // length field unused, stream ends before it matters

	payload := []byte{
		flags,
		byte(word >> 8), byte(word),
	}
	header := buildHeader(payload, format.RTFCompTypeLZFu, 10)
	stream := append(header, payload...)

	got, err := Decompress(stream, true)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %q, want empty output at sentinel", got)
	}
}

func TestParseHeaderUnknownCompression(t *testing.T) {
	header := buildHeader(nil, [4]byte{'X', 'X', 'X', 'X'}, 0)
	_, err := ParseHeader(header)
	if !pstkiterrors.Is(err, pstkiterrors.KindUnknownCompression) {
		t.Fatalf("err = %v, want KindUnknownCompression", err)
	}
}

func TestDecompressCRCMismatch(t *testing.T) {
	stream := CompressUncompressed([]byte("hello"))
	stream[len(stream)-1] ^= 0xFF // flip a body byte without updating the header CRC
	_, err := Decompress(stream, true)
	if !pstkiterrors.Is(err, pstkiterrors.KindCorrupt) {
		t.Fatalf("err = %v, want KindCorrupt", err)
	}
}

// buildHeader assembles a 16-byte MS-OXRTFCP header for a hand-built payload.
func buildHeader(payload []byte, compType [4]byte, rawSize uint32) []byte {
	h := make([]byte, format.RTFHeaderSize)
	putU32LE(h[format.RTFCompSizeOff:], uint32(len(payload)+12))
	putU32LE(h[format.RTFRawSizeOff:], rawSize)
	copy(h[format.RTFCompTypeOff:], compType[:])
	var crc uint32
	if payload != nil {
		crc = crc32pst.Checksum(payload)
	}
	putU32LE(h[format.RTFCRCOff:], crc)
	return h
}

func putU32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
