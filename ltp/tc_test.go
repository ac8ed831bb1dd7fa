package ltp

import (
	"encoding/binary"
	"testing"

	"github.com/mbranch/pstkit/internal/format"
)

// buildTCHeader lays out a minimal TC header: signature, column count,
// row-id BTH HID, row-matrix ref (an HID, HN-inline), bitmap offset, row
// size, and a column descriptor array.
func buildTCHeader(rowIDAlloc, rowMatrixAlloc int, bitmapOffset, rowSize uint16, columns []Column) []byte {
	columnArrayOffset := format.TCHeaderSize
	h := make([]byte, columnArrayOffset+len(columns)*format.TCColumnDescSize)
	h[0] = format.TCSignature
	h[1] = byte(len(columns))
	binary.LittleEndian.PutUint32(h[2:6], uint32(rowIDAlloc)<<format.HIDAllocShift)
	binary.LittleEndian.PutUint32(h[6:10], uint32(rowMatrixAlloc)<<format.HIDAllocShift)
	binary.LittleEndian.PutUint16(h[10:12], bitmapOffset)
	binary.LittleEndian.PutUint16(h[12:14], rowSize)
	binary.LittleEndian.PutUint16(h[14:16], uint16(columnArrayOffset))
	for i, c := range columns {
		off := columnArrayOffset + i*format.TCColumnDescSize
		binary.LittleEndian.PutUint32(h[off:], c.Tag)
		binary.LittleEndian.PutUint16(h[off+4:], c.Offset)
		h[off+6] = c.Width
		h[off+7] = c.BitmapIndex
	}
	return h
}

func TestTCRowAndColumn(t *testing.T) {
	const subjectTag = uint32(0x0037)<<format.PropIDShift | uint32(format.PtypInteger32)
	columns := []Column{
		{Tag: subjectTag, Offset: 0, Width: 4, BitmapIndex: 0},
	}
	// bitmap lives right after the fixed cell area in each row.
	bitmapOffset := uint16(4)
	rowSize := bitmapOffset + 1

	row0 := make([]byte, rowSize)
	binary.LittleEndian.PutUint32(row0[0:4], 111)
	row0[bitmapOffset] = 0x01 // bit 0 set: column present
	row1 := make([]byte, rowSize)
	binary.LittleEndian.PutUint32(row1[0:4], 222)
	row1[bitmapOffset] = 0x01

	rowMatrix := append(append([]byte{}, row0...), row1...)

	// row-index BTH: leaf entries (rowID key(4) -> physical slot(4)), depth 0.
	rowIndexLeaf := make([]byte, 0, 16)
	for _, e := range [][2]uint32{{0, 0}, {1, 1}} {
		k := make([]byte, 4)
		binary.LittleEndian.PutUint32(k, e[0])
		v := make([]byte, 4)
		binary.LittleEndian.PutUint32(v, e[1])
		rowIndexLeaf = append(rowIndexLeaf, k...)
		rowIndexLeaf = append(rowIndexLeaf, v...)
	}
	rowIndexHeader := make([]byte, format.BTHHeaderSize)
	rowIndexHeader[0] = format.BTHHeaderSignature
	rowIndexHeader[1] = 4 // key size: row id
	rowIndexHeader[2] = 4 // value size: physical slot
	binary.LittleEndian.PutUint32(rowIndexHeader[4:], uint32(3)<<format.HIDAllocShift)

	tcHeader := buildTCHeader(2, 4, bitmapOffset, rowSize, columns)

	data, _ := buildHN(format.HNClientSigTC, 1, [][]byte{
		tcHeader,       // alloc 1: TC header (root)
		rowIndexHeader, // alloc 2: row-index BTH header
		rowIndexLeaf,   // alloc 3: row-index BTH leaf page
		rowMatrix,      // alloc 4: inline row matrix
	})

	hn, err := ParseHN(data)
	if err != nil {
		t.Fatalf("ParseHN: %v", err)
	}
	tc, err := OpenTC(hn, nil)
	if err != nil {
		t.Fatalf("OpenTC: %v", err)
	}

	rows, err := tc.Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Rows() len = %d, want 2", len(rows))
	}

	v, ok, err := tc.Column(0, subjectTag)
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !ok {
		t.Fatalf("Column(0, subjectTag) not found")
	}
	if v.Int != 111 {
		t.Fatalf("Column(0) = %d, want 111", v.Int)
	}

	v1, ok, err := tc.Column(1, subjectTag)
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !ok || v1.Int != 222 {
		t.Fatalf("Column(1) = %+v, want 222", v1)
	}
}

// TestTCColumnInteger16 covers a 2-byte fixed cell (PtypInteger16 /
// PtypBoolean's width): buildRecord must place it at record[4:6], not
// right-aligned at record[6:8], for PC.decode's width-2 branch to see it.
func TestTCColumnInteger16(t *testing.T) {
	tag := uint32(0x0040)<<format.PropIDShift | uint32(format.PtypInteger16)
	columns := []Column{
		{Tag: tag, Offset: 0, Width: 2, BitmapIndex: 0},
	}
	bitmapOffset := uint16(2)
	rowSize := bitmapOffset + 1

	row0 := make([]byte, rowSize)
	binary.LittleEndian.PutUint16(row0[0:2], 7)
	row0[bitmapOffset] = 0x01
	rowMatrix := append([]byte{}, row0...)

	rowIndexLeaf := make([]byte, 0, 8)
	k := make([]byte, 4)
	binary.LittleEndian.PutUint32(k, 0)
	v := make([]byte, 4)
	binary.LittleEndian.PutUint32(v, 0)
	rowIndexLeaf = append(rowIndexLeaf, k...)
	rowIndexLeaf = append(rowIndexLeaf, v...)

	rowIndexHeader := make([]byte, format.BTHHeaderSize)
	rowIndexHeader[0] = format.BTHHeaderSignature
	rowIndexHeader[1] = 4
	rowIndexHeader[2] = 4
	binary.LittleEndian.PutUint32(rowIndexHeader[4:], uint32(3)<<format.HIDAllocShift)

	tcHeader := buildTCHeader(2, 4, bitmapOffset, rowSize, columns)

	data, _ := buildHN(format.HNClientSigTC, 1, [][]byte{
		tcHeader,
		rowIndexHeader,
		rowIndexLeaf,
		rowMatrix,
	})

	hn, err := ParseHN(data)
	if err != nil {
		t.Fatalf("ParseHN: %v", err)
	}
	tc, err := OpenTC(hn, nil)
	if err != nil {
		t.Fatalf("OpenTC: %v", err)
	}

	v16, ok, err := tc.Column(0, tag)
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !ok || v16.Int != 7 {
		t.Fatalf("Column(0) = %+v, want 7", v16)
	}
}

// TestTCRowVariableColumn covers a variable-width cell (an HID into the
// TC's own heap): buildRecord must place the reference at record[:4], not
// right-aligned at record[4:8], for PC.decodeVariable to resolve it
// instead of treating it as a null HID.
func TestTCRowVariableColumn(t *testing.T) {
	tag := uint32(0x3001)<<format.PropIDShift | uint32(format.PtypString8)
	columns := []Column{
		{Tag: tag, Offset: 0, Width: 4, BitmapIndex: 0},
	}
	bitmapOffset := uint16(4)
	rowSize := bitmapOffset + 1
	wantBytes := []byte("hello")

	// alloc 5 holds the string payload the row's HID points at.
	row0 := make([]byte, rowSize)
	binary.LittleEndian.PutUint32(row0[0:4], uint32(5)<<format.HIDAllocShift)
	row0[bitmapOffset] = 0x01
	rowMatrix := append([]byte{}, row0...)

	rowIndexLeaf := make([]byte, 0, 8)
	k := make([]byte, 4)
	binary.LittleEndian.PutUint32(k, 0)
	v := make([]byte, 4)
	binary.LittleEndian.PutUint32(v, 0)
	rowIndexLeaf = append(rowIndexLeaf, k...)
	rowIndexLeaf = append(rowIndexLeaf, v...)

	rowIndexHeader := make([]byte, format.BTHHeaderSize)
	rowIndexHeader[0] = format.BTHHeaderSignature
	rowIndexHeader[1] = 4
	rowIndexHeader[2] = 4
	binary.LittleEndian.PutUint32(rowIndexHeader[4:], uint32(3)<<format.HIDAllocShift)

	tcHeader := buildTCHeader(2, 4, bitmapOffset, rowSize, columns)

	data, _ := buildHN(format.HNClientSigTC, 1, [][]byte{
		tcHeader,
		rowIndexHeader,
		rowIndexLeaf,
		rowMatrix,
		wantBytes,
	})

	hn, err := ParseHN(data)
	if err != nil {
		t.Fatalf("ParseHN: %v", err)
	}
	tc, err := OpenTC(hn, nil)
	if err != nil {
		t.Fatalf("OpenTC: %v", err)
	}

	row, err := tc.Row(0)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	got, ok := row[tag]
	if !ok {
		t.Fatalf("Row(0) missing tag %#x", tag)
	}
	if string(got.Raw) != string(wantBytes) {
		t.Fatalf("Row(0)[tag].Raw = %q, want %q", got.Raw, wantBytes)
	}
}
