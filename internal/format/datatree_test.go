package format

import (
	"encoding/binary"
	"testing"
)

func buildXBlock(variant Variant, bids []uint64) []byte {
	bidSize := BIDSizeUnicode
	if variant == VariantANSI {
		bidSize = BIDSizeANSI
	}
	data := make([]byte, XBlockHeaderSize+len(bids)*bidSize)
	binary.LittleEndian.PutUint16(data[xblockSigOffset:], BlockSigXBlock)
	data[xblockLevelOffset] = 1
	data[xblockCountOffset] = byte(len(bids))
	binary.LittleEndian.PutUint32(data[xblockTotalOffset:], 0x1000)
	pos := XBlockHeaderSize
	for _, b := range bids {
		if bidSize == 4 {
			binary.LittleEndian.PutUint32(data[pos:], uint32(b))
		} else {
			binary.LittleEndian.PutUint64(data[pos:], b)
		}
		pos += bidSize
	}
	return data
}

func TestParseXBlockHeader(t *testing.T) {
	data := buildXBlock(VariantUnicode, []uint64{1, 2, 3})
	hdr, err := ParseXBlockHeader(data)
	if err != nil {
		t.Fatalf("ParseXBlockHeader: %v", err)
	}
	if hdr.Signature != BlockSigXBlock || hdr.Level != 1 || hdr.Count != 3 {
		t.Fatalf("unexpected header: %+v", hdr)
	}
}

func TestReadChildBIDsUnicode(t *testing.T) {
	data := buildXBlock(VariantUnicode, []uint64{0x1111, 0x2222, 0x3333})
	bids, err := ReadChildBIDs(data, 3, VariantUnicode)
	if err != nil {
		t.Fatalf("ReadChildBIDs: %v", err)
	}
	if len(bids) != 3 || bids[0] != 0x1111 || bids[2] != 0x3333 {
		t.Fatalf("unexpected bids: %v", bids)
	}
}

func TestReadChildBIDsANSI(t *testing.T) {
	data := buildXBlock(VariantANSI, []uint64{0x10, 0x20})
	bids, err := ReadChildBIDs(data, 2, VariantANSI)
	if err != nil {
		t.Fatalf("ReadChildBIDs: %v", err)
	}
	if len(bids) != 2 || bids[0] != 0x10 || bids[1] != 0x20 {
		t.Fatalf("unexpected bids: %v", bids)
	}
}

func TestReadChildBIDsTruncated(t *testing.T) {
	short := make([]byte, XBlockHeaderSize+2)
	if _, err := ReadChildBIDs(short, 3, VariantUnicode); err == nil {
		t.Fatalf("expected truncation error")
	}
}
