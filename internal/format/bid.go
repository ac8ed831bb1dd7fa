package format

// BID is a block identifier: an opaque key resolved through the BBT to an
// absolute file offset and on-disk size (spec §3 "Block-id"). Its low bit
// distinguishes internal (data-tree) blocks from leaves for some on-disk
// encodings.
type BID uint64

// IsInternal reports whether the low bit marking an internal/data-tree block
// is set.
func (b BID) IsInternal() bool { return uint64(b)&1 != 0 }
