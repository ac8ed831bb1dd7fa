package ltp

import (
	"encoding/binary"
	"testing"

	"github.com/mbranch/pstkit/internal/format"
)

// buildHN assembles a minimal HN byte buffer: an 8-byte header, a page
// map, and the given allocations back to back. hidFor(i) returns the HID
// (1-based) for allocs[i].
func buildHN(clientSig byte, rootAllocIndex int, allocs [][]byte) (data []byte, hidFor func(i int) HID) {
	const headerSize = format.HNPageHeaderSize
	pageMapOffset := headerSize
	pageMapSize := 2 + (len(allocs)+1)*2
	allocsStart := pageMapOffset + pageMapSize

	offsets := make([]int, len(allocs)+1)
	offsets[0] = allocsStart
	for i, a := range allocs {
		offsets[i+1] = offsets[i] + len(a)
	}
	total := offsets[len(allocs)]
	data = make([]byte, total)

	data[0] = format.HNPageSignature
	data[format.HNClientSigOffset] = clientSig
	binary.LittleEndian.PutUint16(data[format.HNPageMapOffsetField:], uint16(pageMapOffset))
	binary.LittleEndian.PutUint32(data[4:8], uint32(rootAllocIndex)<<format.HIDAllocShift)

	binary.LittleEndian.PutUint16(data[pageMapOffset:], uint16(len(allocs)))
	for i, off := range offsets {
		binary.LittleEndian.PutUint16(data[pageMapOffset+2+i*2:], uint16(off))
	}
	for i, a := range allocs {
		copy(data[offsets[i]:], a)
	}
	return data, func(i int) HID { return HID(uint32(i) << format.HIDAllocShift) }
}

func TestPCGetInteger32(t *testing.T) {
	const propID = 0x3001
	tag := uint32(propID)<<format.PropIDShift | uint32(format.PtypInteger32)

	leaf := make([]byte, 0, 12)
	keyBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(keyBuf, tag)
	valueBuf := make([]byte, 8)
	binary.LittleEndian.PutUint32(valueBuf[4:], 42)
	leaf = append(leaf, keyBuf...)
	leaf = append(leaf, valueBuf...)

	bthHeader := make([]byte, format.BTHHeaderSize)
	bthHeader[0] = format.BTHHeaderSignature
	bthHeader[1] = format.PCKeySize
	bthHeader[2] = format.PCValueSize
	bthHeader[3] = 0 // depth
	binary.LittleEndian.PutUint32(bthHeader[4:], uint32(2)<<format.HIDAllocShift)

	data, _ := buildHN(format.HNClientSigPC, 1, [][]byte{bthHeader, leaf})
	hn, err := ParseHN(data)
	if err != nil {
		t.Fatalf("ParseHN: %v", err)
	}
	pc, err := OpenPC(hn, nil)
	if err != nil {
		t.Fatalf("OpenPC: %v", err)
	}
	if !pc.Contains(tag) {
		t.Fatalf("Contains(tag) = false, want true")
	}
	v, err := pc.Get(tag)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Int != 42 {
		t.Fatalf("Get(tag).Int = %d, want 42", v.Int)
	}
}

func TestPCGetNotFound(t *testing.T) {
	bthHeader := make([]byte, format.BTHHeaderSize)
	bthHeader[0] = format.BTHHeaderSignature
	bthHeader[1] = format.PCKeySize
	bthHeader[2] = format.PCValueSize
	binary.LittleEndian.PutUint32(bthHeader[4:], 0)

	data, _ := buildHN(format.HNClientSigPC, 1, [][]byte{bthHeader})
	hn, err := ParseHN(data)
	if err != nil {
		t.Fatalf("ParseHN: %v", err)
	}
	pc, err := OpenPC(hn, nil)
	if err != nil {
		t.Fatalf("OpenPC: %v", err)
	}
	if pc.Contains(0x12345678) {
		t.Fatalf("Contains should be false for an empty PC")
	}
	if _, err := pc.Get(0x12345678); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestPCVariableValueViaSubNode(t *testing.T) {
	const propID = 0x3701 // PidTagAttachDataBinary-shaped test tag
	tag := uint32(propID)<<format.PropIDShift | uint32(format.PtypBinary)

	const subNID = format.NID(0x12345 << 5)
	wantBytes := []byte("attachment payload")

	keyBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(keyBuf, tag)
	valueBuf := make([]byte, 8)
	binary.LittleEndian.PutUint32(valueBuf[:4], uint32(subNID)|1) // low bit set => NID
	leaf := append(append([]byte{}, keyBuf...), valueBuf...)

	bthHeader := make([]byte, format.BTHHeaderSize)
	bthHeader[0] = format.BTHHeaderSignature
	bthHeader[1] = format.PCKeySize
	bthHeader[2] = format.PCValueSize
	binary.LittleEndian.PutUint32(bthHeader[4:], uint32(2)<<format.HIDAllocShift)

	data, _ := buildHN(format.HNClientSigPC, 1, [][]byte{bthHeader, leaf})
	hn, err := ParseHN(data)
	if err != nil {
		t.Fatalf("ParseHN: %v", err)
	}
	resolver := func(nid format.NID) ([]byte, error) {
		if nid != subNID|1 {
			t.Fatalf("resolver called with unexpected nid %#x", nid)
		}
		return wantBytes, nil
	}
	pc, err := OpenPC(hn, resolver)
	if err != nil {
		t.Fatalf("OpenPC: %v", err)
	}
	v, err := pc.Get(tag)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v.Raw) != string(wantBytes) {
		t.Fatalf("Get(tag).Raw = %q, want %q", v.Raw, wantBytes)
	}
}
