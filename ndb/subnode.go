package ndb

import (
	"sort"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
)

// SubNodeEntry is a leaf entry of a node's sub-node tree: child NID ->
// (data-BID, nested sub-node-BID) (spec §4.4 "Sub-node resolution").
type SubNodeEntry struct {
	NID     format.NID
	DataBID format.BID
	SubBID  format.BID
}

func slEntrySize(variant format.Variant) int {
	if variant == format.VariantANSI {
		return 12 // nid(4) + bidData(4) + bidSub(4)
	}
	return 24 // nid(8) + bidData(8) + bidSub(8)
}

func siEntrySize(variant format.Variant) int {
	if variant == format.VariantANSI {
		return 8 // nid(4) + bidSLBLOCK(4)
	}
	return 16 // nid(8) + bidSLBLOCK(8)
}

func decodeSLEntry(e []byte, variant format.Variant) SubNodeEntry {
	if variant == format.VariantANSI {
		return SubNodeEntry{
			NID:     format.NID(buf.U32LE(e[0:])),
			DataBID: format.BID(buf.U32LE(e[4:])),
			SubBID:  format.BID(buf.U32LE(e[8:])),
		}
	}
	return SubNodeEntry{
		NID:     format.NID(buf.U64LE(e[0:])),
		DataBID: format.BID(buf.U64LE(e[8:])),
		SubBID:  format.BID(buf.U64LE(e[16:])),
	}
}

// Sub-node blocks carry the same 4-byte footer shape as NBT/BBT pages
// (cLevel/cEntCount/cEntMax/padding) but live inside assembled block
// data rather than at a fixed on-disk page offset, since a sub-node tree
// root is itself reached via the BBT like any other block.
//
// resolveSubNode descends parentSubBID's sub-node tree looking for
// childNID, recursing through SIBLOCK (intermediate) pages until it
// reaches an SLBLOCK (leaf) page.
func resolveSubNode(fetch func(format.BID) ([]byte, error), variant format.Variant, parentSubBID format.BID, childNID format.NID) (SubNodeEntry, error) {
	return descendSubNode(fetch, variant, parentSubBID, childNID)
}

func descendSubNode(fetch func(format.BID) ([]byte, error), variant format.Variant, bid format.BID, nid format.NID) (SubNodeEntry, error) {
	if bid == 0 {
		return SubNodeEntry{}, pstkiterrors.ErrNotFound
	}
	block, err := fetch(bid)
	if err != nil {
		return SubNodeEntry{}, err
	}
	if len(block) < format.PageFooterSize {
		return SubNodeEntry{}, pstkiterrors.Corrupt("sub-node block too small")
	}
	footerStart := len(block) - format.PageFooterSize
	level := block[footerStart+format.PageFooterLevelOffset]
	count := int(block[footerStart+format.PageFooterCountOffset])

	if level == 0 {
		entrySize := slEntrySize(variant)
		need := count * entrySize
		if need > footerStart {
			return SubNodeEntry{}, pstkiterrors.Corrupt("sub-node leaf entries overrun block")
		}
		entries := block[:need]
		idx := sort.Search(count, func(i int) bool {
			e := entries[i*entrySize : (i+1)*entrySize]
			return leafNID(e, variant) >= uint64(nid)
		})
		if idx >= count {
			return SubNodeEntry{}, pstkiterrors.ErrNotFound
		}
		e := entries[idx*entrySize : (idx+1)*entrySize]
		if leafNID(e, variant) != uint64(nid) {
			return SubNodeEntry{}, pstkiterrors.ErrNotFound
		}
		return decodeSLEntry(e, variant), nil
	}

	entrySize := siEntrySize(variant)
	need := count * entrySize
	if need > footerStart {
		return SubNodeEntry{}, pstkiterrors.Corrupt("sub-node internal entries overrun block")
	}
	entries := block[:need]
	idx := sort.Search(count, func(i int) bool {
		e := entries[i*entrySize : (i+1)*entrySize]
		return leafNID(e, variant) > uint64(nid)
	})
	if idx == 0 {
		return SubNodeEntry{}, pstkiterrors.ErrNotFound
	}
	e := entries[(idx-1)*entrySize : idx*entrySize]
	childBID := siChildBID(e, variant)
	return descendSubNode(fetch, variant, childBID, nid)
}

func leafNID(e []byte, variant format.Variant) uint64 {
	if variant == format.VariantANSI {
		return uint64(buf.U32LE(e[0:]))
	}
	return buf.U64LE(e[0:])
}

func siChildBID(e []byte, variant format.Variant) format.BID {
	if variant == format.VariantANSI {
		return format.BID(buf.U32LE(e[4:]))
	}
	return format.BID(buf.U64LE(e[8:]))
}
