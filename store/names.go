package store

import (
	"encoding/binary"
	"fmt"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/ltp"
)

// Streams making up the name-to-id map PC at the special NID
// format.NIDNameToIDMap (MS-PST 2.4.7 "Name-to-ID Map").
const (
	nameidStreamGUID   = uint32(0x00020102) << format.PropIDShift
	nameidStreamEntry  = uint32(0x00020103) << format.PropIDShift
	nameidStreamString = uint32(0x00020104) << format.PropIDShift
)

const nameidEntrySize = 8

// NamedProperty is a resolved named-property identity: either a string
// name or a numeric id, scoped to a property set GUID (spec §12
// "Named-property resolution").
type NamedProperty struct {
	GUID     [16]byte
	IsString bool
	Name     string
	ID       uint32
}

func (n NamedProperty) String() string {
	if n.IsString {
		return n.Name
	}
	return fmt.Sprintf("0x%04X", n.ID)
}

// NamedPropertyMap resolves tag ids in the 0x8000-0xFFFE named-property
// range to their NamedProperty identity, indexed by the stream-relative
// entry position encoded in the tag.
type NamedPropertyMap struct {
	entries map[uint16]NamedProperty
}

// loadNamedPropertyMap opens and decodes the name-to-id map. Its absence
// (a store with no named properties at all) is not an error: Lookup on a
// nil map simply never resolves anything.
func loadNamedPropertyMap(file *File) (*NamedPropertyMap, error) {
	pc, err := file.pcFor(format.NID(format.NIDNameToIDMap))
	if err != nil {
		if pstkiterrors.Is(err, pstkiterrors.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	guidStream, err := streamBytes(pc, nameidStreamGUID)
	if err != nil {
		return nil, err
	}
	entryStream, err := streamBytes(pc, nameidStreamEntry)
	if err != nil {
		return nil, err
	}
	stringStream, err := streamBytes(pc, nameidStreamString)
	if err != nil {
		return nil, err
	}

	m := &NamedPropertyMap{entries: make(map[uint16]NamedProperty)}
	for off := 0; off+nameidEntrySize <= len(entryStream); off += nameidEntrySize {
		rec := entryStream[off : off+nameidEntrySize]
		dword := binary.LittleEndian.Uint32(rec[0:4])
		wGuid := binary.LittleEndian.Uint16(rec[4:6])
		wPropIdx := binary.LittleEndian.Uint16(rec[6:8])

		np := NamedProperty{GUID: lookupGUID(guidStream, wGuid)}
		if wPropIdx&0x1 == 1 {
			np.IsString = true
			np.Name = readNameidString(stringStream, dword)
		} else {
			np.ID = dword
		}
		// The full tag is 0x8000 + the entry's own index within this
		// stream (MS-PST 2.4.7.1); off/nameidEntrySize recovers that
		// index from byte position.
		index := uint16(off/nameidEntrySize) + 0x8000
		m.entries[index] = np
	}
	return m, nil
}

// lookupGUID resolves wGuid's well-known or stream-indexed GUID (MS-PST
// 2.4.7.2): 1 is PS_MAPI, 2 is PS_PUBLIC_STRINGS, anything else indexes
// into the 16-byte-per-entry GUID stream at (wGuid-3).
func lookupGUID(guidStream []byte, wGuid uint16) [16]byte {
	switch wGuid {
	case 1, 2:
		return [16]byte{}
	default:
		idx := int(wGuid) - 3
		off := idx * 16
		var g [16]byte
		if off >= 0 && off+16 <= len(guidStream) {
			copy(g[:], guidStream[off:off+16])
		}
		return g
	}
}

// readNameidString reads the length-prefixed, NUL-padded UTF-16LE name at
// byte offset off within the string stream (MS-PST 2.4.7.4).
func readNameidString(stream []byte, off uint32) string {
	if int(off)+4 > len(stream) {
		return ""
	}
	length := binary.LittleEndian.Uint32(stream[off : off+4])
	start := int(off) + 4
	end := start + int(length)
	if end > len(stream) {
		return ""
	}
	s, err := ltp.DecodeUnicodeString(stream[start:end])
	if err != nil {
		return ""
	}
	return s
}

func streamBytes(pc *ltp.PC, tag uint32) ([]byte, error) {
	v, err := pc.Get(tag)
	if err != nil {
		if pstkiterrors.Is(err, pstkiterrors.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v.Raw, nil
}

// Lookup resolves tag's property id portion against the stream-relative
// index it encodes, returning ok=false for anything outside the named
// range or not present in the map.
func (m *NamedPropertyMap) Lookup(tag PropertyTag) (NamedProperty, bool) {
	if m == nil {
		return NamedProperty{}, false
	}
	id := uint16(tag >> format.PropIDShift)
	if id < 0x8000 {
		return NamedProperty{}, false
	}
	np, ok := m.entries[id]
	return np, ok
}
