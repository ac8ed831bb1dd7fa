package ndb

import (
	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/blockcipher"
	"github.com/mbranch/pstkit/internal/crc32pst"
	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/internal/pageio"
)

// maxDataTreeDepth bounds XBLOCK/XXBLOCK recursion (spec §4.4: "max depth
// two internal levels") and also breaks sub-block reference cycles
// (spec §4.4 Failures: "sub-block cycle").
const maxDataTreeDepth = 2

// readBlock reads the raw block at bbt.Offset, validates its trailer CRC,
// and deobfuscates it in place (spec I1, §4.4 step 3). The trailer's
// signature is returned but not checked here.
func readBlock(p *pageio.Pager, variant Variant, bbt BBTEntry, cryptMethod blockcipher.Method) ([]byte, format.Trailer, error) {
	size := blockSizeFor(bbt.Size, variant)
	raw, err := p.Read(bbt.Offset, size)
	if err != nil {
		return nil, format.Trailer{}, pstkiterrors.Wrap(pstkiterrors.KindIO, "read block", err)
	}
	trailer, err := format.ParseTrailer(raw, variant)
	if err != nil {
		return nil, format.Trailer{}, pstkiterrors.Wrap(pstkiterrors.KindCorrupt, "parse block trailer", err)
	}
	data, ok := trailer.Data(raw)
	if !ok {
		return nil, format.Trailer{}, pstkiterrors.Corrupt("block trailer cb exceeds block size")
	}
	if !crc32pst.Matches(data, trailer.CRC) {
		return nil, format.Trailer{}, pstkiterrors.Corrupt("block crc")
	}
	owned := append([]byte(nil), data...)
	if err := blockcipher.Decode(owned, trailer.BID, cryptMethod); err != nil {
		return nil, format.Trailer{}, pstkiterrors.Wrap(pstkiterrors.KindCorrupt, "deobfuscate block", err)
	}
	return owned, trailer, nil
}

// blockSizeFor rounds a declared block size up to the next page boundary;
// PST blocks are always stored in whole 512-byte units with the trailer
// appended at the end of the last unit.
func blockSizeFor(declared uint16, variant Variant) int {
	unit := format.BlockSize
	total := int(declared) + format.BlockTrailerSize
	if total <= unit {
		return unit
	}
	n := (total + unit - 1) / unit
	return n * unit
}

type Variant = format.Variant

// AssembleDataStream reconstructs the logical byte stream for dataBID:
// leaf blocks are returned as-is; internal blocks (XBLOCK/XXBLOCK) are
// expanded by resolving each child BID through the BBT and concatenating
// their leaf payloads in declared order (spec §4.4 step 4).
func AssembleDataStream(p *pageio.Pager, variant format.Variant, bbtRoot int64, cache *blockCache, entryCache *bbtEntryCache, cryptMethod blockcipher.Method, dataBID format.BID) ([]byte, error) {
	return assemble(p, variant, bbtRoot, cache, entryCache, cryptMethod, dataBID, 0)
}

func assemble(p *pageio.Pager, variant format.Variant, bbtRoot int64, cache *blockCache, entryCache *bbtEntryCache, cryptMethod blockcipher.Method, bid format.BID, depth int) ([]byte, error) {
	if depth > maxDataTreeDepth {
		return nil, pstkiterrors.Corrupt("data-tree exceeds maximum depth")
	}
	if cached, ok := cache.get(bid); ok {
		return cached, nil
	}

	bbt, ok := entryCache.get(bid)
	if !ok {
		var err error
		bbt, err = LookupBBT(p, variant, bbtRoot, bid)
		if err != nil {
			return nil, err
		}
		entryCache.put(bid, bbt)
	}

	data, trailer, err := readBlock(p, variant, bbt, cryptMethod)
	if err != nil {
		return nil, err
	}

	if trailer.Signature != format.BlockSigXBlock && trailer.Signature != format.BlockSigXXBlock {
		cache.put(bid, data)
		return data, nil
	}

	hdr, err := format.ParseXBlockHeader(data)
	if err != nil {
		return nil, pstkiterrors.Wrap(pstkiterrors.KindCorrupt, "parse xblock header", err)
	}
	children, err := format.ReadChildBIDs(data, hdr.Count, variant)
	if err != nil {
		return nil, pstkiterrors.Wrap(pstkiterrors.KindCorrupt, "read xblock children", err)
	}

	out := make([]byte, 0, hdr.TotalBytes)
	for _, childBID := range children {
		childData, err := assemble(p, variant, bbtRoot, cache, entryCache, cryptMethod, format.BID(childBID), depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, childData...)
	}
	cache.put(bid, out)
	return out, nil
}
