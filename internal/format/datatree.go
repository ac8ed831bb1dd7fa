package format

import (
	"fmt"

	"github.com/mbranch/pstkit/internal/buf"
)

// XBlockHeader is the header of an internal data-tree block (XBLOCK/XXBLOCK):
// a block whose payload is a flat list of child BIDs rather than raw stream
// bytes (spec §3 "Logical data stream", §4.4 step 4).
type XBlockHeader struct {
	Signature  uint16 // BlockSigXBlock or BlockSigXXBlock (also readable from the trailer)
	Level      uint8  // 0 = children are leaves, 1 = children are XBLOCKs (max depth two per spec)
	Count      uint16 // number of child BIDs
	TotalBytes uint32 // total size of the reassembled leaf stream
}

const (
	xblockSigOffset   = 0x00
	xblockLevelOffset = 0x02
	xblockCountOffset = 0x03
	xblockTotalOffset = 0x04
	// XBlockHeaderSize is the header size preceding the child BID array.
	XBlockHeaderSize = 0x08
)

// ParseXBlockHeader reads an internal data-tree block's header.
func ParseXBlockHeader(data []byte) (XBlockHeader, error) {
	if len(data) < XBlockHeaderSize {
		return XBlockHeader{}, fmt.Errorf("xblock header: %w", ErrTruncated)
	}
	return XBlockHeader{
		Signature:  buf.U16LE(data[xblockSigOffset:]),
		Level:      data[xblockLevelOffset],
		Count:      uint16(data[xblockCountOffset]),
		TotalBytes: buf.U32LE(data[xblockTotalOffset:]),
	}, nil
}

// ReadChildBIDs reads Count child BIDs following an XBlockHeader, sized per variant.
func ReadChildBIDs(data []byte, count uint16, variant Variant) ([]uint64, error) {
	width := BIDSizeUnicode
	if variant == VariantANSI {
		width = BIDSizeANSI
	}
	body := data[XBlockHeaderSize:]
	need := int(count) * width
	chunk, ok := buf.Slice(body, 0, need)
	if !ok {
		return nil, fmt.Errorf("xblock children: %w", ErrTruncated)
	}
	out := make([]uint64, count)
	for i := range out {
		off := i * width
		if width == 4 {
			out[i] = uint64(buf.U32LE(chunk[off:]))
		} else {
			out[i] = buf.U64LE(chunk[off:])
		}
	}
	return out, nil
}
