package format

import (
	"encoding/binary"
	"testing"
)

func TestParsePageLeaf(t *testing.T) {
	const entrySize = 8
	page := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(page[0:], 0x1111)
	binary.LittleEndian.PutUint32(page[4:], 0x2222)
	binary.LittleEndian.PutUint32(page[8:], 0x3333)
	binary.LittleEndian.PutUint32(page[12:], 0x4444)

	footerStart := len(page) - BlockTrailerSize - PageFooterSize
	page[footerStart+PageFooterLevelOffset] = 0
	page[footerStart+PageFooterCountOffset] = 2
	page[footerStart+PageFooterMaxCountOffset] = 10

	env, err := ParsePage(page, VariantUnicode, entrySize)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if env.Level != 0 || env.Count != 2 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	e0, ok := env.Entry(0, entrySize)
	if !ok || binary.LittleEndian.Uint32(e0) != 0x1111 {
		t.Fatalf("entry 0 mismatch")
	}
	e1, ok := env.Entry(1, entrySize)
	if !ok || binary.LittleEndian.Uint32(e1) != 0x3333 {
		t.Fatalf("entry 1 mismatch")
	}
}

func TestParsePageCountExceedsCapacity(t *testing.T) {
	page := make([]byte, BlockSize)
	footerStart := len(page) - BlockTrailerSize - PageFooterSize
	page[footerStart+PageFooterCountOffset] = 5
	page[footerStart+PageFooterMaxCountOffset] = 1
	if _, err := ParsePage(page, VariantUnicode, 8); err == nil {
		t.Fatalf("expected corruption error when count exceeds capacity")
	}
}
