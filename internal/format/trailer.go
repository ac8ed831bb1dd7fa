package format

import (
	"fmt"

	"github.com/mbranch/pstkit/internal/buf"
)

// Trailer is the 16-byte structure every page and data block carries as its
// final bytes (spec §3 "Page / Block").
type Trailer struct {
	Cb        uint16 // logical size of the block's data, excluding the trailer
	Signature uint16 // per-block-type signature
	CRC       uint32 // CRC-32 (PST variant) over the data
	BID       uint64 // this block's own block-id
}

// ParseTrailer reads the trailer from the final BlockTrailerSize bytes of block.
func ParseTrailer(block []byte, variant Variant) (Trailer, error) {
	if len(block) < BlockTrailerSize {
		return Trailer{}, fmt.Errorf("block trailer: %w", ErrTruncated)
	}
	t := block[len(block)-BlockTrailerSize:]
	bidWidth := BIDSizeUnicode
	if variant == VariantANSI {
		bidWidth = BIDSizeANSI
	}
	bidChunk, ok := buf.Slice(t, TrailerBIDOffset, bidWidth)
	if !ok {
		return Trailer{}, fmt.Errorf("block trailer: %w", ErrTruncated)
	}
	var bid uint64
	if bidWidth == 4 {
		bid = uint64(buf.U32LE(bidChunk))
	} else {
		bid = buf.U64LE(bidChunk)
	}
	return Trailer{
		Cb:        buf.U16LE(t[TrailerCbOffset:]),
		Signature: buf.U16LE(t[TrailerSigOffset:]),
		CRC:       buf.U32LE(t[TrailerCRCOffset:]),
		BID:       bid,
	}, nil
}

// Data returns the block's data region (everything before the trailer),
// bounded by the trailer's declared Cb when Cb is smaller than the available
// space (on-disk blocks are padded to an 8-byte multiple).
func (t Trailer) Data(block []byte) ([]byte, bool) {
	avail := len(block) - BlockTrailerSize
	if avail < 0 {
		return nil, false
	}
	n := int(t.Cb)
	if n > avail {
		return nil, false
	}
	return block[:n], true
}
