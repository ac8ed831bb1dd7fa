package ltp

import (
	"encoding/binary"
	"fmt"
	"math"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
)

// SubNodeResolver reads the data stream of a NID within a node's sub-node
// tree, used to resolve variable-length property values that live there
// instead of in the PC's own heap (spec §4.6 "the low 4 bytes are ...
// an NID, resolved in the parent's sub-node tree").
type SubNodeResolver func(format.NID) ([]byte, error)

// PropertyValue is a decoded PC/TC cell: its type and resolved bytes.
// Scalar types carry their value pre-decoded in the Int/Float/Bool/Time
// fields; variable types carry resolved raw bytes in Raw.
type PropertyValue struct {
	Tag  uint32
	Type uint16

	Int   int64
	Float float64
	Bool  bool
	Time  int64 // raw FILETIME ticks; internal/format.FiletimeToTime converts

	Raw     []byte // PtypString8/PtypString/PtypBinary/PtypObject resolved bytes
	Multi   [][]byte
	IsMulti bool
}

// PC is a Property Context: a property-tag -> value map backed by a BTH
// over an HN (spec §4.6).
type PC struct {
	hn             *HN
	bth            *BTH
	resolveSubNode SubNodeResolver
}

// OpenPC parses a Property Context from hn, which must carry the PC
// client signature.
func OpenPC(hn *HN, resolveSubNode SubNodeResolver) (*PC, error) {
	if hn.ClientSignature() != format.HNClientSigPC {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "hn is not a property context")
	}
	bth, err := ParseBTH(hn, hn.RootHID())
	if err != nil {
		return nil, err
	}
	return &PC{hn: hn, bth: bth, resolveSubNode: resolveSubNode}, nil
}

func tagKey(tag uint32) []byte {
	k := make([]byte, 4)
	binary.LittleEndian.PutUint32(k, tag)
	return k
}

// Contains reports whether tag is present in the PC (spec "contains(tag)").
func (pc *PC) Contains(tag uint32) bool {
	_, ok, err := pc.bth.Lookup(tagKey(tag))
	return err == nil && ok
}

// Get decodes the value for tag (spec "get(tag)").
func (pc *PC) Get(tag uint32) (PropertyValue, error) {
	value, ok, err := pc.bth.Lookup(tagKey(tag))
	if err != nil {
		return PropertyValue{}, err
	}
	if !ok {
		return PropertyValue{}, pstkiterrors.ErrNotFound
	}
	return pc.decode(tag, value)
}

// Enumerate walks the PC in BTH key order, decoding every value. Per-value
// decode errors are reported alongside the tag rather than aborting the
// whole enumeration (spec "decoding errors on individual properties are
// reported per-property and do not abort enumeration").
func (pc *PC) Enumerate() ([]PropertyValue, []error) {
	entries, err := pc.bth.Enumerate()
	if err != nil {
		return nil, []error{err}
	}
	var values []PropertyValue
	var errs []error
	for _, e := range entries {
		tag := binary.LittleEndian.Uint32(e.Key)
		v, err := pc.decode(tag, e.Value)
		if err != nil {
			errs = append(errs, fmt.Errorf("tag %#x: %w", tag, err))
			continue
		}
		values = append(values, v)
	}
	return values, errs
}

// decode applies the PC value-record decoding rule (spec §4.6 "Decoding
// rule") to an 8-byte value record for tag.
func (pc *PC) decode(tag uint32, record []byte) (PropertyValue, error) {
	ptype := uint16(tag & format.PropTypeMask)
	v := PropertyValue{Tag: tag, Type: ptype}

	width := scalarWidth(ptype)
	switch {
	case width > 0 && width <= 4:
		raw := record[4:8]
		v.Int = int64(buf.U32LE(raw))
		if width == 2 {
			v.Int = int64(int16(buf.U16LE(raw)))
		}
		if ptype == format.PtypBoolean {
			v.Bool = raw[0] != 0
		}
		if ptype == format.PtypFloating32 {
			v.Float = float64(math.Float32frombits(buf.U32LE(raw)))
		}
		return v, nil
	case width == 8:
		raw := record[:8]
		bits := buf.U64LE(raw)
		switch ptype {
		case format.PtypFloating64:
			v.Float = math.Float64frombits(bits)
		case format.PtypTime:
			v.Time = int64(bits)
		default:
			v.Int = int64(bits)
		}
		return v, nil
	default:
		return pc.decodeVariable(v, record)
	}
}

// decodeVariable resolves a variable-width or multi-valued property via
// the low 4 bytes of its record: an HID into this PC's own heap, or an
// NID into the parent's sub-node tree, per the low bit of the reference
// (spec §4.6).
func (pc *PC) decodeVariable(v PropertyValue, record []byte) (PropertyValue, error) {
	ref := buf.U32LE(record[:4])
	data, err := pc.resolveRef(ref)
	if err != nil {
		return PropertyValue{}, err
	}
	if isMultiValue(v.Type) {
		v.IsMulti = true
		v.Multi = splitMultiValue(v.Type, data)
		return v, nil
	}
	v.Raw = data
	return v, nil
}

func (pc *PC) resolveRef(ref uint32) ([]byte, error) {
	if ref&1 == 0 {
		return pc.hn.Resolve(HID(ref))
	}
	if pc.resolveSubNode == nil {
		return nil, pstkiterrors.New(pstkiterrors.KindCorrupt, "variable value needs sub-node resolver")
	}
	return pc.resolveSubNode(format.NID(ref))
}

// scalarWidth returns the inline byte width of a fixed-size property
// type, or 0 for variable/multi-valued types.
func scalarWidth(ptype uint16) int {
	switch ptype {
	case format.PtypInteger16, format.PtypBoolean:
		return 2
	case format.PtypInteger32, format.PtypFloating32, format.PtypErrorCode:
		return 4
	case format.PtypFloating64, format.PtypCurrency, format.PtypFloatingTime,
		format.PtypInteger64, format.PtypTime:
		return 8
	default:
		return 0
	}
}

func isMultiValue(ptype uint16) bool {
	return ptype&format.MultiValueFlag != 0
}

// splitMultiValue partitions a resolved multi-value payload into its
// per-element byte slices: fixed-width types are an array of elements of
// a known size; variable-width types prepend a 4-byte count followed by
// per-element offsets into the remaining bytes (spec §4.6 "Multi-valued
// types prepend a 4-byte count then per-element fixed records or
// offsets").
func splitMultiValue(ptype uint16, data []byte) [][]byte {
	elemWidth := multiElementWidth(ptype)
	if elemWidth > 0 {
		n := len(data) / elemWidth
		out := make([][]byte, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, data[i*elemWidth:(i+1)*elemWidth])
		}
		return out
	}
	if len(data) < 4 {
		return nil
	}
	count := int(buf.U32LE(data))
	if count == 0 {
		return nil
	}
	offsets := make([]uint32, count+1)
	for i := 0; i <= count; i++ {
		start := 4 + i*4
		if start+4 > len(data) {
			return nil
		}
		offsets[i] = buf.U32LE(data[start:])
	}
	body := data[4+(count+1)*4:]
	out := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		s, e := offsets[i], offsets[i+1]
		if int(e) > len(body) || s > e {
			return nil
		}
		out = append(out, body[s:e])
	}
	return out
}

func multiElementWidth(ptype uint16) int {
	switch ptype {
	case format.PtypMultipleInteger16:
		return 2
	case format.PtypMultipleInteger32:
		return 4
	case format.PtypMultipleInteger64, format.PtypMultipleTime:
		return 8
	case format.PtypMultipleGuid:
		return 16
	default:
		return 0
	}
}
