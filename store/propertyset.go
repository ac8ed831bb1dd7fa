package store

import (
	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/ltp"
)

// PropertySet is the lazy property-set facade exposed on every domain
// entity (spec §3 "PropertySet (facade)", §9 "Property facade with three
// closures"). It is implemented once, here, and backed by any source
// that can get/contain/enumerate tagged values — a PC, a TC row, or (for
// tests) a synthetic in-memory map.
type PropertySet struct {
	get      func(tag PropertyTag) (ltp.PropertyValue, error)
	contains func(tag PropertyTag) bool
	entries  func() ([]ltp.PropertyValue, []error)
}

// Get returns tag's decoded value, or a KindNotFound error if absent.
func (p PropertySet) Get(tag PropertyTag) (ltp.PropertyValue, error) {
	return p.get(tag)
}

// Contains reports whether tag is present.
func (p PropertySet) Contains(tag PropertyTag) bool {
	return p.contains(tag)
}

// Enumerate decodes every present property. Per-property decode errors are
// returned alongside the successfully decoded values rather than aborting
// the walk (spec §4.6 "PC operations").
func (p PropertySet) Enumerate() ([]ltp.PropertyValue, []error) {
	return p.entries()
}

// String returns tag's decoded string value, or "" if absent or not a
// string-typed property.
func (p PropertySet) String(tag PropertyTag) string {
	v, err := p.get(tag)
	if err != nil {
		return ""
	}
	s, err := ltp.DecodeStringValue(v)
	if err != nil {
		return ""
	}
	return s
}

// Int returns tag's decoded integer value, or 0 if absent.
func (p PropertySet) Int(tag PropertyTag) int64 {
	v, err := p.get(tag)
	if err != nil {
		return 0
	}
	return v.Int
}

// NamedEntry pairs a decoded property value with its resolved identity:
// a NamedProperty name/id for tags in the named range, or just the bare
// tag for well-known (non-named) properties.
type NamedEntry struct {
	Tag   PropertyTag
	Named NamedProperty
	Value ltp.PropertyValue
}

// EnumerateNamed is Enumerate plus best-effort named-property resolution
// against names (spec §12 "Named-property resolution"). names may be nil
// (e.g. a store with no name-to-id map), in which case every entry's
// Named field is left zero and Tag is the only identity available.
func (p PropertySet) EnumerateNamed(names *NamedPropertyMap) ([]NamedEntry, []error) {
	values, errs := p.entries()
	out := make([]NamedEntry, 0, len(values))
	for _, v := range values {
		entry := NamedEntry{Tag: v.Tag, Value: v}
		if np, ok := names.Lookup(v.Tag); ok {
			entry.Named = np
		}
		out = append(out, entry)
	}
	return out, errs
}

func newPCPropertySet(pc *ltp.PC) PropertySet {
	return PropertySet{
		get: func(t PropertyTag) (ltp.PropertyValue, error) {
			return pc.Get(t)
		},
		contains: pc.Contains,
		entries: func() ([]ltp.PropertyValue, []error) {
			return pc.Enumerate()
		},
	}
}

// newRowPropertySet builds a PropertySet over a decoded TC row (tag ->
// value map), used for Recipient/Attachment rows that carry their fields
// as TC columns rather than a standalone PC.
func newRowPropertySet(row map[PropertyTag]ltp.PropertyValue) PropertySet {
	return PropertySet{
		get: func(t PropertyTag) (ltp.PropertyValue, error) {
			v, ok := row[t]
			if !ok {
				return ltp.PropertyValue{}, pstkiterrors.ErrNotFound
			}
			return v, nil
		},
		contains: func(t PropertyTag) bool {
			_, ok := row[t]
			return ok
		},
		entries: func() ([]ltp.PropertyValue, []error) {
			out := make([]ltp.PropertyValue, 0, len(row))
			for _, v := range row {
				out = append(out, v)
			}
			return out, nil
		},
	}
}
