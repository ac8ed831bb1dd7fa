package format

import (
	"encoding/binary"
	"testing"
)

func buildHeader(variant Variant) []byte {
	b := make([]byte, HeaderSize)
	copy(b[HeaderMagicOffset:], Magic)
	copy(b[HeaderClientMagicOffset:], ClientMagic)
	switch variant {
	case VariantANSI:
		binary.LittleEndian.PutUint16(b[HeaderVersionOffset:], VersionANSI)
	case VariantUnicode:
		binary.LittleEndian.PutUint16(b[HeaderVersionOffset:], VersionUnicode)
	default:
		binary.LittleEndian.PutUint16(b[HeaderVersionOffset:], VersionUnicode4K)
	}
	binary.LittleEndian.PutUint32(b[HeaderCRCPartialOffset:], 0xDEADBEEF)

	rootOff := HeaderRootOffsetUnicode
	bidSize, ibSize := BIDSizeUnicode, IBSizeUnicode
	if variant == VariantANSI {
		rootOff = HeaderRootOffsetANSI
		bidSize, ibSize = BIDSizeANSI, IBSizeANSI
	}
	pos := rootOff + bidSize
	if ibSize == 4 {
		binary.LittleEndian.PutUint32(b[pos:], 0x4000)
	} else {
		binary.LittleEndian.PutUint64(b[pos:], 0x4000)
	}
	pos += ibSize + bidSize
	if ibSize == 4 {
		binary.LittleEndian.PutUint32(b[pos:], 0x8000)
	} else {
		binary.LittleEndian.PutUint64(b[pos:], 0x8000)
	}
	pos += ibSize
	binary.LittleEndian.PutUint32(b[pos:], NIDMessageStore)
	pos += 4
	if ibSize == 4 {
		binary.LittleEndian.PutUint32(b[pos:], 0x10000)
	} else {
		binary.LittleEndian.PutUint64(b[pos:], 0x10000)
	}
	return b
}

func TestParseHeaderUnicode(t *testing.T) {
	b := buildHeader(VariantUnicode)
	hdr, err := ParseHeader(b)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Variant != VariantUnicode {
		t.Fatalf("variant mismatch: %+v", hdr)
	}
	if hdr.NBTRootPage != 0x4000 || hdr.BBTRootPage != 0x8000 {
		t.Fatalf("root pages mismatch: %+v", hdr)
	}
	if hdr.RootNID != NIDMessageStore {
		t.Fatalf("root nid mismatch: %+v", hdr)
	}
	if hdr.FileSize != 0x10000 {
		t.Fatalf("file size mismatch: %+v", hdr)
	}
}

func TestParseHeaderANSI(t *testing.T) {
	b := buildHeader(VariantANSI)
	hdr, err := ParseHeader(b)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Variant != VariantANSI {
		t.Fatalf("variant mismatch: %+v", hdr)
	}
	if hdr.NBTRootPage != 0x4000 || hdr.BBTRootPage != 0x8000 {
		t.Fatalf("root pages mismatch: %+v", hdr)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	b := buildHeader(VariantUnicode)
	if _, err := ParseHeader(b[:10]); err == nil {
		t.Fatalf("expected truncation error")
	}
	bad := append([]byte(nil), b...)
	copy(bad, []byte{'X', 'X', 'X', 'X'})
	if _, err := ParseHeader(bad); err == nil {
		t.Fatalf("expected signature error")
	}
	bad2 := append([]byte(nil), b...)
	binary.LittleEndian.PutUint16(bad2[HeaderVersionOffset:], 99)
	if _, err := ParseHeader(bad2); err == nil {
		t.Fatalf("expected unsupported version error")
	}
}
