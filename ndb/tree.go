package ndb

import (
	"sort"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/internal/pageio"
)

// descend walks an NBT/BBT page tree rooted at pageOffset, binary
// searching each level (spec §4.4 "Tree descent"). leafSize is the
// per-variant leaf-entry width for this tree; internal pages use
// internalEntrySize. Duplicate keys on a page are not detected.
func descend(p *pageio.Pager, variant format.Variant, pageOffset int64, key uint64, leafSize int) ([]byte, error) {
	page, err := p.Read(pageOffset, format.BlockSize)
	if err != nil {
		return nil, pstkiterrors.Wrap(pstkiterrors.KindIO, "read tree page", err)
	}

	// A page's entry size depends on its level (0 for a leaf), so peek the
	// level from the raw footer before choosing entrySize.
	level := page[len(page)-format.BlockTrailerSize-format.PageFooterSize+format.PageFooterLevelOffset]
	entrySize := leafSize
	isInternal := level > 0
	if isInternal {
		entrySize = internalEntrySize(variant)
	}

	env, err := format.ParsePage(page, variant, entrySize)
	if err != nil {
		return nil, pstkiterrors.Wrap(pstkiterrors.KindCorrupt, "parse tree page", err)
	}

	n := int(env.Count)
	if !isInternal {
		idx := sort.Search(n, func(i int) bool {
			e, _ := env.Entry(i, entrySize)
			k, _ := leafKey(e, variant)
			return k >= key
		})
		if idx >= n {
			return nil, pstkiterrors.ErrNotFound
		}
		e, _ := env.Entry(idx, entrySize)
		k, _ := leafKey(e, variant)
		if k != key {
			return nil, pstkiterrors.ErrNotFound
		}
		return e, nil
	}

	// Internal page: find the last entry whose key <= target.
	idx := sort.Search(n, func(i int) bool {
		e, _ := env.Entry(i, entrySize)
		k, _ := internalKey(e, variant)
		return k > key
	})
	if idx == 0 {
		return nil, pstkiterrors.ErrNotFound
	}
	e, _ := env.Entry(idx-1, entrySize)
	_, childOffset := internalKey(e, variant)
	return descend(p, variant, childOffset, key, leafSize)
}

// leafKey extracts the ordering key from a leaf entry without fully
// decoding it, so descend can binary-search without caring whether the
// tree is an NBT or a BBT.
func leafKey(e []byte, variant format.Variant) (uint64, error) {
	if variant == format.VariantANSI {
		return uint64(buf.U32LE(e)), nil
	}
	return buf.U64LE(e), nil
}

// LookupNBT finds the NBT leaf entry for nid.
func LookupNBT(p *pageio.Pager, variant format.Variant, rootOffset int64, nid format.NID) (NBTEntry, error) {
	e, err := descend(p, variant, rootOffset, uint64(nid), nbtLeafSize(variant))
	if err != nil {
		return NBTEntry{}, err
	}
	return decodeNBTLeaf(e, variant), nil
}

// LookupBBT finds the BBT leaf entry for bid.
func LookupBBT(p *pageio.Pager, variant format.Variant, rootOffset int64, bid format.BID) (BBTEntry, error) {
	e, err := descend(p, variant, rootOffset, uint64(bid), bbtLeafSize(variant))
	if err != nil {
		return BBTEntry{}, err
	}
	return decodeBBTLeaf(e, variant), nil
}
