package format

// NID is a 32-bit node identifier. The low 5 bits give the node type; the
// high 27 bits give an index unique within that type (spec §3 "Node-id").
type NID uint32

// Type returns the node's type (low 5 bits).
func (n NID) Type() uint32 { return uint32(n) & NIDTypeMask }

// Index returns the node's type-local index (high 27 bits).
func (n NID) Index() uint32 { return (uint32(n) &^ NIDTypeMask) >> NIDIndexShift }

// WithType returns a NID for the same index but a different node type. This
// is how the store layer derives a folder's hierarchy/contents/FAI table NIDs
// and a message's recipient/attachment table NIDs from the owning node's NID.
func (n NID) WithType(t uint32) NID {
	return NID((n.Index() << NIDIndexShift) | (t & NIDTypeMask))
}

// IsSpecial reports whether nid is one of the format's fixed well-known NIDs.
func (n NID) IsSpecial() bool {
	switch uint32(n) {
	case NIDMessageStore, NIDRootFolder, NIDNameToIDMap:
		return true
	default:
		return false
	}
}
