package ltp

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
)

// BTH is a B-Tree-on-Heap reader: a sorted key/value index whose nodes
// are HN allocations (spec §4.5 "BTH reader").
type BTH struct {
	hn        *HN
	keySize   int
	valueSize int
	depth     uint8
	root      HID
}

// BTHEntry is a decoded leaf (key, value) pair.
type BTHEntry struct {
	Key   []byte
	Value []byte
}

// ParseBTH parses the BTH header found at rootHID within hn.
func ParseBTH(hn *HN, rootHID HID) (*BTH, error) {
	header, err := hn.Resolve(rootHID)
	if err != nil {
		return nil, err
	}
	if len(header) < format.BTHHeaderSize {
		return nil, fmt.Errorf("ltp: %w: header truncated", ErrInvalidBthHeader)
	}
	if header[0] != format.BTHHeaderSignature {
		return nil, fmt.Errorf("ltp: %w: bad signature", ErrInvalidBthHeader)
	}
	keySize := int(header[1])
	valueSize := int(header[2])
	depth := header[3]
	switch keySize {
	case 2, 4, 8, 16:
	default:
		return nil, fmt.Errorf("ltp: %w: key size %d", ErrInvalidBthHeader, keySize)
	}
	root := HID(buf.U32LE(header[4:8]))
	return &BTH{hn: hn, keySize: keySize, valueSize: valueSize, depth: depth, root: root}, nil
}

// KeySize and ValueSize report the BTH's fixed record widths.
func (b *BTH) KeySize() int   { return b.keySize }
func (b *BTH) ValueSize() int { return b.valueSize }

// compareKey orders two fixed-width keys. Keys of 8 bytes or fewer are
// compared as little-endian unsigned integers (property tags, NIDs);
// 16-byte keys (GUID-keyed BTHs, e.g. named-property lookups) are
// compared lexicographically, matching how they're written byte-for-byte
// on disk.
func compareKey(a, b []byte) int {
	if len(a) <= 8 {
		av, bv := uint64(0), uint64(0)
		for i := len(a) - 1; i >= 0; i-- {
			av = av<<8 | uint64(a[i])
		}
		for i := len(b) - 1; i >= 0; i-- {
			bv = bv<<8 | uint64(b[i])
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
	return bytes.Compare(a, b)
}

// Lookup finds the value for key, or reports ok=false if absent.
func (b *BTH) Lookup(key []byte) (value []byte, ok bool, err error) {
	return b.descend(b.root, int(b.depth), key)
}

func (b *BTH) descend(hid HID, levelsRemaining int, key []byte) ([]byte, bool, error) {
	if hid.IsZero() {
		return nil, false, nil
	}
	page, err := b.hn.Resolve(hid)
	if err != nil {
		return nil, false, err
	}
	if levelsRemaining > 0 {
		entrySize := b.keySize + 4 // key + child HID
		n := len(page) / entrySize
		idx := sort.Search(n, func(i int) bool {
			e := page[i*entrySize : i*entrySize+b.keySize]
			return compareKey(e, key) > 0
		})
		if idx == 0 {
			return nil, false, nil
		}
		e := page[(idx-1)*entrySize : idx*entrySize]
		childHID := HID(buf.U32LE(e[b.keySize:]))
		return b.descend(childHID, levelsRemaining-1, key)
	}
	entrySize := b.keySize + b.valueSize
	n := len(page) / entrySize
	idx := sort.Search(n, func(i int) bool {
		e := page[i*entrySize : i*entrySize+b.keySize]
		return compareKey(e, key) >= 0
	})
	if idx >= n {
		return nil, false, nil
	}
	e := page[idx*entrySize : (idx+1)*entrySize]
	if compareKey(e[:b.keySize], key) != 0 {
		return nil, false, nil
	}
	return e[b.keySize:], true, nil
}

// Enumerate returns every (key, value) pair in ascending key order.
func (b *BTH) Enumerate() ([]BTHEntry, error) {
	var out []BTHEntry
	if err := b.walk(b.root, int(b.depth), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BTH) walk(hid HID, levelsRemaining int, out *[]BTHEntry) error {
	if hid.IsZero() {
		return nil
	}
	page, err := b.hn.Resolve(hid)
	if err != nil {
		return err
	}
	if levelsRemaining > 0 {
		entrySize := b.keySize + 4
		n := len(page) / entrySize
		for i := 0; i < n; i++ {
			e := page[i*entrySize : (i+1)*entrySize]
			childHID := HID(buf.U32LE(e[b.keySize:]))
			if err := b.walk(childHID, levelsRemaining-1, out); err != nil {
				return err
			}
		}
		return nil
	}
	entrySize := b.keySize + b.valueSize
	n := len(page) / entrySize
	for i := 0; i < n; i++ {
		e := page[i*entrySize : (i+1)*entrySize]
		*out = append(*out, BTHEntry{
			Key:   append([]byte(nil), e[:b.keySize]...),
			Value: append([]byte(nil), e[b.keySize:]...),
		})
	}
	return nil
}
