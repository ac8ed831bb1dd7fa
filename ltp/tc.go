package ltp

import (
	"encoding/binary"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
)

// Column describes one TC column: the property it carries and where its
// fixed-width cell lives within a row (spec §4.6 "TC operations").
type Column struct {
	Tag         uint32
	Offset      uint16
	Width       uint8
	BitmapIndex uint8
}

// TC is a Table Context: a row-major table whose row index is a BTH
// keyed by row id, with row material either inline (row-index value is
// an HID) or in a sub-node data stream partitioned into fixed-width rows
// (spec §4.6).
type TC struct {
	hn             *HN
	rowIndex       *BTH
	columns        []Column
	rowSize        int
	bitmapOffset   int
	rowIDResolver  func(rowID uint32) ([]byte, error)
	resolveSubNode SubNodeResolver
}

// OpenTC parses a Table Context from hn, which must carry the TC client
// signature. resolveSubNode reads the row-matrix bytes when it's sub-node
// backed rather than HN-inline.
func OpenTC(hn *HN, resolveSubNode SubNodeResolver) (*TC, error) {
	if hn.ClientSignature() != format.HNClientSigTC {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "hn is not a table context")
	}
	header, err := hn.Resolve(hn.RootHID())
	if err != nil {
		return nil, err
	}
	if len(header) < format.TCHeaderSize {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "tc header truncated")
	}
	if header[0] != format.TCSignature {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "tc signature mismatch")
	}
	columnCount := int(header[1])
	rowIDHID := HID(buf.U32LE(header[2:6]))
	rowMatrixRef := buf.U32LE(header[6:10])
	bitmapOffset := int(buf.U16LE(header[10:12]))
	rowSize := int(buf.U16LE(header[12:14]))
	columnArrayOffset := int(buf.U16LE(header[14:16]))

	columns := make([]Column, 0, columnCount)
	for i := 0; i < columnCount; i++ {
		off := columnArrayOffset + i*format.TCColumnDescSize
		c, ok := buf.Slice(header, off, format.TCColumnDescSize)
		if !ok {
			return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "tc column descriptor truncated")
		}
		columns = append(columns, Column{
			Tag:         buf.U32LE(c[0:4]),
			Offset:      buf.U16LE(c[4:6]),
			Width:       c[6],
			BitmapIndex: c[7],
		})
	}

	rowIndex, err := ParseBTH(hn, rowIDHID)
	if err != nil {
		return nil, err
	}

	tc := &TC{
		hn:             hn,
		rowIndex:       rowIndex,
		columns:        columns,
		rowSize:        rowSize,
		bitmapOffset:   bitmapOffset,
		resolveSubNode: resolveSubNode,
	}
	tc.rowIDResolver = func(rowID uint32) ([]byte, error) {
		return tc.resolveRowMatrix(rowMatrixRef, rowID)
	}
	return tc, nil
}

// resolveRowMatrix returns the full row-matrix byte stream (HN-inline via
// HID, or sub-node backed via NID) and slices out rowID's row. For an
// HN-inline row matrix the ref is an HID directly into this TC's heap;
// for a sub-node-backed one (large tables) it's an NID resolved through
// the owning node's sub-node tree (spec §4.6 "Row material is found
// either inline ... or via a sub-node data stream partitioned into
// fixed-width rows").
func (tc *TC) resolveRowMatrix(ref uint32, rowID uint32) ([]byte, error) {
	var matrix []byte
	var err error
	if ref&1 == 0 {
		matrix, err = tc.hn.Resolve(HID(ref))
	} else {
		if tc.resolveSubNode == nil {
			return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "row matrix needs sub-node resolver")
		}
		matrix, err = tc.resolveSubNode(format.NID(ref))
	}
	if err != nil {
		return nil, err
	}
	start := int(rowID) * tc.rowSize
	end := start + tc.rowSize
	if end > len(matrix) {
		return nil, pstkiterrors.Corrupt("tc row index out of range")
	}
	return matrix[start:end], nil
}

// RowCount reports the number of rows in the table (spec "row_count").
func (tc *TC) RowCount() (int, error) {
	entries, err := tc.rowIndex.Enumerate()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Rows returns every row id in the table's canonical stored order (spec
// "Ordering": the row-index BTH key order).
func (tc *TC) Rows() ([]uint32, error) {
	entries, err := tc.rowIndex.Enumerate()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, len(entries))
	for _, e := range entries {
		out = append(out, uint32(buf.U32LE(e.Key)))
	}
	return out, nil
}

// rowBytes resolves rowID's physical row index (the value half of its
// row-index BTH entry encodes which physical slot in the row matrix it
// occupies) and returns the fixed-width row bytes.
func (tc *TC) rowBytes(rowID uint32) ([]byte, error) {
	key := make([]byte, 4)
	binary.LittleEndian.PutUint32(key, rowID)
	value, ok, err := tc.rowIndex.Lookup(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pstkiterrors.ErrNotFound
	}
	slot := buf.U32LE(value)
	return tc.rowIDResolver(slot)
}

// Column looks up tag's cell in rowID, checking the cell-existence
// bitmap first (spec I5: "valid iff its cell-existence bit is set").
func (tc *TC) Column(rowID uint32, tag uint32) (PropertyValue, bool, error) {
	row, err := tc.rowBytes(rowID)
	if err != nil {
		return PropertyValue{}, false, err
	}
	var col *Column
	for i := range tc.columns {
		if tc.columns[i].Tag == tag {
			col = &tc.columns[i]
			break
		}
	}
	if col == nil {
		return PropertyValue{}, false, nil
	}
	if !tc.cellExists(row, col.BitmapIndex) {
		return PropertyValue{}, false, nil
	}
	cell, ok := buf.Slice(row, int(col.Offset), int(col.Width))
	if !ok {
		return PropertyValue{}, false, pstkiterrors.Corrupt("tc cell out of range")
	}
	record := buildRecord(tag, cell)
	pc := &PC{hn: tc.hn, resolveSubNode: tc.resolveSubNode}
	v, err := pc.decode(tag, record)
	return v, true, err
}

// buildRecord assembles an 8-byte PC-style value record from a TC cell,
// placing the cell where PC.decode expects it to be for tag's property
// type: scalars of width <= 4 at record[4:8], width-8 scalars across the
// full record, and variable-length/multi-value references (an HID or NID
// in the low 4 bytes) at record[:4] — the same convention PC's own BTH
// values use (spec §4.6 "Decoding rule"). A blanket right-align of the
// cell into the 8-byte record (as opposed to placing it by type) is wrong
// for 2-byte cells and for 4-byte reference cells alike.
func buildRecord(tag uint32, cell []byte) []byte {
	record := make([]byte, 8)
	ptype := uint16(tag & format.PropTypeMask)
	switch width := scalarWidth(ptype); {
	case width > 0 && width <= 4:
		copy(record[4:8], cell)
	case width == 8:
		copy(record[:8], cell)
	default:
		copy(record[:4], cell)
	}
	return record
}

func (tc *TC) cellExists(row []byte, bitIndex uint8) bool {
	byteOff := tc.bitmapOffset + int(bitIndex/8)
	if byteOff >= len(row) {
		return false
	}
	return row[byteOff]&(1<<(bitIndex%8)) != 0
}

// Row decodes every column present in rowID (spec "row(row_id)").
func (tc *TC) Row(rowID uint32) (map[uint32]PropertyValue, error) {
	row, err := tc.rowBytes(rowID)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]PropertyValue, len(tc.columns))
	pc := &PC{hn: tc.hn, resolveSubNode: tc.resolveSubNode}
	for _, col := range tc.columns {
		if !tc.cellExists(row, col.BitmapIndex) {
			continue
		}
		cell, ok := buf.Slice(row, int(col.Offset), int(col.Width))
		if !ok {
			continue
		}
		record := buildRecord(col.Tag, cell)
		v, err := pc.decode(col.Tag, record)
		if err != nil {
			continue
		}
		out[col.Tag] = v
	}
	return out, nil
}
