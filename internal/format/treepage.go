package format

import (
	"fmt"

	"github.com/mbranch/pstkit/internal/buf"
)

// NBT and BBT pages share one on-disk envelope: a packed entry array followed
// by a small footer and the common 16-byte block Trailer (spec §4.4 "Tree
// descent"). The entry *contents* differ between NBT and BBT and between
// leaf and internal pages, so this package only exposes the envelope; ndb
// decodes individual entries.
const (
	PageFooterSize = 4 // cLevel(1) + cEntCount(1) + cEntMax(1) + reserved(1)
)

// PageFooterOffset within the footer, relative to its own start.
const (
	PageFooterLevelOffset    = 0x00
	PageFooterCountOffset    = 0x01
	PageFooterMaxCountOffset = 0x02
)

// PageEnvelope describes a parsed NBT/BBT page's entry region and metadata.
type PageEnvelope struct {
	Level     uint8 // 0 = leaf page, >0 = internal page
	Count     uint8 // number of live entries
	MaxCount  uint8 // entry-array capacity (spec P2: "no page has more entries than its declared capacity")
	Entries   []byte
	Trailer   Trailer
}

// ParsePage splits a raw page/block into its entry region, footer fields, and
// trailer, given the fixed per-entry size for this tree/level combination.
func ParsePage(page []byte, variant Variant, entrySize int) (PageEnvelope, error) {
	if len(page) < BlockTrailerSize+PageFooterSize {
		return PageEnvelope{}, fmt.Errorf("tree page: %w", ErrTruncated)
	}
	trailer, err := ParseTrailer(page, variant)
	if err != nil {
		return PageEnvelope{}, err
	}
	footerStart := len(page) - BlockTrailerSize - PageFooterSize
	footer := page[footerStart : footerStart+PageFooterSize]
	level := footer[PageFooterLevelOffset]
	count := footer[PageFooterCountOffset]
	maxCount := footer[PageFooterMaxCountOffset]

	need := int(count) * entrySize
	entries, ok := buf.Slice(page, 0, need)
	if !ok {
		return PageEnvelope{}, fmt.Errorf("tree page: %w", ErrTruncated)
	}
	if int(count) > int(maxCount) {
		return PageEnvelope{}, fmt.Errorf("tree page: count %d exceeds capacity %d: corrupt", count, maxCount)
	}
	return PageEnvelope{
		Level:    level,
		Count:    count,
		MaxCount: maxCount,
		Entries:  entries,
		Trailer:  trailer,
	}, nil
}

// Entry returns the i-th fixed-size entry slice.
func (p PageEnvelope) Entry(i int, entrySize int) ([]byte, bool) {
	return buf.Slice(p.Entries, i*entrySize, entrySize)
}
