package store

import (
	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/ltp"
)

// Attachment is a row projected from a message's attachment table (spec
// §3 "Recipient / Attachment").
type Attachment struct {
	file *File
	// objectNID addresses this attachment's own sub-node stream (its
	// AttachDataBinary/AttachDataObject payload) within ownerSrc's
	// sub-node tree.
	objectNID format.NID
	// ownerSrc resolves the owning message's sub-node tree — the same
	// nodeSource the owning Message was opened with, so an attachment on
	// a doubly-embedded message still resolves correctly.
	ownerSrc nodeSource
	row      map[uint32]ltp.PropertyValue
}

// Filename returns PidTagAttachLongFilename, falling back to the legacy
// 8.3 PidTagAttachFilename.
func (a *Attachment) Filename() string {
	p := a.properties()
	if s := p.String(PidTagAttachLongFilename); s != "" {
		return s
	}
	return p.String(PidTagAttachFilename)
}

// MimeType returns PidTagAttachMimeTag.
func (a *Attachment) MimeType() string {
	return a.properties().String(PidTagAttachMimeTag)
}

// Size returns PidTagAttachSize.
func (a *Attachment) Size() int64 {
	return a.properties().Int(PidTagAttachSize)
}

// Bytes returns the attachment's binary payload (PidTagAttachDataBinary),
// resolved through the owning message's sub-node tree like any other
// variable-length TC cell.
func (a *Attachment) Bytes() ([]byte, error) {
	v, err := a.properties().Get(PidTagAttachDataBinary)
	if err != nil {
		return nil, err
	}
	return v.Raw, nil
}

// Properties returns the attachment row's PropertySet.
func (a *Attachment) Properties() PropertySet {
	return a.properties()
}

func (a *Attachment) properties() PropertySet {
	return newRowPropertySet(a.row)
}

// IsEmbeddedMessage reports whether this attachment carries a recursively
// embedded message (PidTagAttachMethod == AttachMethodByEmbedded) rather
// than raw binary data (spec §3 Attachment, §12 "Embedded-message
// attachments").
func (a *Attachment) IsEmbeddedMessage() bool {
	return a.properties().Int(PidTagAttachMethod) == AttachMethodByEmbedded
}

// EmbeddedMessage resolves PidTagAttachDataObject to the nested message it
// references. The embedded message's own node lives only under the owning
// message's sub-node tree (it has no entry in the global NBT), so it is
// located via ownerSrc's entryFor rather than a top-level NID lookup, and
// its own body/recipients/attachments all resolve relative to that
// sub-node entry in turn — which is what lets a message embedded inside
// an embedded message work without special-casing the nesting depth.
func (a *Attachment) EmbeddedMessage() (*Message, error) {
	entry, err := a.ownerSrc.entryFor(a.objectNID)
	if err != nil {
		return nil, err
	}
	src := a.file.sourceForSubNodeEntry(entry)
	return &Message{file: a.file, nid: a.objectNID, src: src}, nil
}
