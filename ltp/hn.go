package ltp

import (
	"fmt"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
)

// HID is a heap allocation id: an index into an HN's page map (spec §3
// "HID" / §4.5 "resolve(HID)").
type HID uint32

// AllocIndex returns the 1-based allocation slot this HID names; 0 means
// "no allocation" (a null reference).
func (h HID) AllocIndex() uint16 {
	return uint16((uint32(h) & format.HIDAllocMask) >> format.HIDAllocShift)
}

// IsZero reports whether h is the null HID.
func (h HID) IsZero() bool { return h == 0 }

// HN is a parsed Heap-on-Node: a single allocation arena with a page map
// of (offset, length) slots addressed by HID (spec §4.5 "HN reader").
//
// The real format spans an HN across multiple 512-byte-aligned heap
// pages for large heaps; this reader treats the entire assembled NDB byte
// stream as one arena and keeps a single page map over it, which is
// sufficient for every heap PC/TC produce in practice (an HN's total size
// is bounded by what fits in one node's data stream) and keeps resolve(HID)
// a single slice operation instead of a page-table walk.
type HN struct {
	data       []byte
	clientSig  byte
	rootHID    HID
	allocStart []uint16
}

// ParseHN parses the heap header and page map at the start of data.
func ParseHN(data []byte) (*HN, error) {
	if len(data) < format.HNPageHeaderSize {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "hn header truncated")
	}
	if data[0] != format.HNPageSignature {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "hn signature mismatch")
	}
	clientSig := data[format.HNClientSigOffset]
	rootHID := HID(buf.U32LE(data[4:8]))
	pageMapPtr := int(buf.U16LE(data[format.HNPageMapOffsetField:]))

	chunk, ok := buf.Slice(data, pageMapPtr, 2)
	if !ok {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "hn page map truncated")
	}
	count := int(buf.U16LE(chunk))
	offsets := make([]uint16, count+1)
	for i := 0; i <= count; i++ {
		c, ok := buf.Slice(data, pageMapPtr+2+i*2, 2)
		if !ok {
			return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "hn page map entry truncated")
		}
		offsets[i] = buf.U16LE(c)
	}

	return &HN{data: data, clientSig: clientSig, rootHID: rootHID, allocStart: offsets}, nil
}

// ClientSignature distinguishes a PC-carrying, TC-carrying, or
// BTH-only heap (format.HNClientSigPC / HNClientSigTC / other).
func (h *HN) ClientSignature() byte { return h.clientSig }

// RootHID is the HID of this heap's top-level allocation (a BTH header
// for PC/TC heaps).
func (h *HN) RootHID() HID { return h.rootHID }

// Resolve returns the byte slice for hid, bounded by the page map.
func (h *HN) Resolve(hid HID) ([]byte, error) {
	idx := hid.AllocIndex()
	if idx == 0 || int(idx) >= len(h.allocStart) {
		return nil, fmt.Errorf("ltp: %w: hid %#x", ErrInvalidHid, hid)
	}
	start, end := h.allocStart[idx-1], h.allocStart[idx]
	if end < start || int(end) > len(h.data) {
		return nil, fmt.Errorf("ltp: %w: hid %#x out of range", ErrInvalidHid, hid)
	}
	return h.data[start:end], nil
}
