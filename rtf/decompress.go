package rtf

import (
	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/crc32pst"
	"github.com/mbranch/pstkit/internal/format"
)

// Header is a parsed MS-OXRTFCP compression header.
type Header struct {
	CompSize uint32 // compressed payload size + 12 (trailing header fields)
	RawSize  uint32 // decompressed output size
	CompType [4]byte
	CRC      uint32
}

// IsCompressed reports whether the stream needs the LZFu codec run over it
// rather than being emitted as-is.
func (h Header) IsCompressed() bool {
	return h.CompType == format.RTFCompTypeLZFu
}

// ParseHeader reads the 16-byte MS-OXRTFCP header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	chunk, ok := buf.Slice(data, 0, format.RTFHeaderSize)
	if !ok {
		return Header{}, pstkiterrors.New(pstkiterrors.KindTruncated, "rtf header truncated")
	}
	var h Header
	h.CompSize = buf.U32LE(chunk[format.RTFCompSizeOff:])
	h.RawSize = buf.U32LE(chunk[format.RTFRawSizeOff:])
	copy(h.CompType[:], chunk[format.RTFCompTypeOff:format.RTFCompTypeOff+4])
	h.CRC = buf.U32LE(chunk[format.RTFCRCOff:])
	if h.CompType != format.RTFCompTypeLZFu && h.CompType != format.RTFCompTypeMELA {
		return Header{}, pstkiterrors.New(pstkiterrors.KindUnknownCompression, string(h.CompType[:]))
	}
	return h, nil
}

// Decompress parses data's MS-OXRTFCP header and returns the decompressed
// RTF body. verifyCRC enables the optional CRC-32 check over the bytes
// after the header (spec §4.7 "CRC validation ... is optional at the
// caller's request").
func Decompress(data []byte, verifyCRC bool) ([]byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	payload := data[format.RTFHeaderSize:]

	if verifyCRC {
		// CompSize includes the 12 trailing header fields (rawSize, compType,
		// crc) in its count, so the payload proper is CompSize-12 bytes.
		n := int(h.CompSize) - 12
		if n < 0 || n > len(payload) {
			return nil, pstkiterrors.Corrupt("rtf comp size out of range")
		}
		if !crc32pst.Matches(payload[:n], h.CRC) {
			return nil, pstkiterrors.Corrupt("rtf crc mismatch")
		}
	}

	if !h.IsCompressed() {
		if int(h.RawSize) <= len(payload) {
			return append([]byte(nil), payload[:h.RawSize]...), nil
		}
		return append([]byte(nil), payload...), nil
	}
	return decodeLZFu(payload, int(h.RawSize))
}

// dictionary is the 4096-byte circular LZFu back-reference window, pre-seeded
// with the constant RTF prelude (spec §4.7 "Codec").
type dictionary struct {
	buf    [format.RTFDictionarySize]byte
	cursor int // next write position, wraps modulo len(buf)
	filled int // how much of buf has ever been written, pins at len(buf)
}

func newDictionary() *dictionary {
	d := &dictionary{}
	for i := 0; i < len(format.RTFPrelude); i++ {
		d.buf[i] = format.RTFPrelude[i]
	}
	d.cursor = len(format.RTFPrelude) % format.RTFDictionarySize
	d.filled = len(format.RTFPrelude)
	return d
}

func (d *dictionary) append(b byte) {
	d.buf[d.cursor] = b
	d.cursor = (d.cursor + 1) % format.RTFDictionarySize
	if d.filled < format.RTFDictionarySize {
		d.filled++
	}
}

func (d *dictionary) at(offset int) byte {
	return d.buf[offset%format.RTFDictionarySize]
}

// decodeLZFu runs the MS-OXRTFCP LZFu codec over payload (the bytes
// following the 16-byte header), stopping at the sentinel back-reference,
// when output reaches rawSize, or when input is exhausted (spec §4.7
// "Decompression ends at the sentinel, when output reaches rawSize, or
// when input is exhausted").
func decodeLZFu(payload []byte, rawSize int) ([]byte, error) {
	dict := newDictionary()
	out := make([]byte, 0, rawSize)
	pos := 0

	for pos < len(payload) && len(out) < rawSize {
		flags := payload[pos]
		pos++
		for bit := 0; bit < 8 && pos < len(payload) && len(out) < rawSize; bit++ {
			if flags&(1<<uint(bit)) == 0 {
				// Literal.
				lit := payload[pos]
				pos++
				out = append(out, lit)
				dict.append(lit)
				continue
			}
			// Back-reference: a big-endian word, high 12 bits offset, low 4
			// bits length-2 (spec §4.7 "Endianness ambiguity").
			if pos+2 > len(payload) {
				return out, pstkiterrors.New(pstkiterrors.KindTruncated, "rtf back-reference truncated")
			}
			word := buf.U16BE(payload[pos:])
			pos += 2
			offset := int(word >> 4)
			length := int(word&0x0F) + 2

			if offset == dict.cursor {
				// Sentinel: stream ends here.
				return out, nil
			}
			for i := 0; i < length && len(out) < rawSize; i++ {
				b := dict.at(offset + i)
				out = append(out, b)
				dict.append(b)
			}
		}
	}
	return out, nil
}
