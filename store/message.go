package store

import (
	"time"

	"github.com/mbranch/pstkit/internal/format"
)

// Message is bound to a message NID and the nodeSource that resolves it.
// For a top-level message src is sourceForNID(nid); for a message embedded
// in an attachment src is sourceForSubNodeEntry of the attachment's
// AttachDataObject entry, so the same code below serves both without
// knowing which (spec §12 "Embedded-message attachments").
type Message struct {
	file *File
	nid  format.NID
	src  nodeSource
}

// Subject returns PidTagSubject.
func (m *Message) Subject() string { return m.properties().String(PidTagSubject) }

// From returns PidTagSenderName, falling back to PidTagSenderEmailAddress.
func (m *Message) From() string {
	p := m.properties()
	if s := p.String(PidTagSenderName); s != "" {
		return s
	}
	return p.String(PidTagSenderEmailAddress)
}

// To, Cc, Bcc return the message's stored display-recipient summary
// strings (PidTagDisplayTo/Cc/Bcc), distinct from the per-recipient detail
// available via Recipients().
func (m *Message) To() string  { return m.properties().String(PidTagDisplayTo) }
func (m *Message) Cc() string  { return m.properties().String(PidTagDisplayCc) }
func (m *Message) Bcc() string { return m.properties().String(PidTagDisplayBcc) }

// SubmittedTime returns PidTagClientSubmitTime.
func (m *Message) SubmittedTime() time.Time {
	return m.filetime(PidTagClientSubmitTime)
}

// ReceivedTime returns PidTagMessageDeliveryTime.
func (m *Message) ReceivedTime() time.Time {
	return m.filetime(PidTagMessageDeliveryTime)
}

func (m *Message) filetime(t PropertyTag) time.Time {
	p := m.properties()
	v, err := p.Get(t)
	if err != nil {
		return time.Time{}
	}
	return format.FiletimeToTime(uint64(v.Time))
}

// Properties returns the message node's own PropertySet.
func (m *Message) Properties() PropertySet {
	return m.properties()
}

func (m *Message) properties() PropertySet {
	pc, err := m.file.pc(m.src)
	if err != nil {
		return emptyPropertySet()
	}
	return newPCPropertySet(pc)
}

// Body selects and decodes the message body, trying PlainBody, HtmlBody,
// then RtfCompressed in that resolution order (spec §4.8 "Message").
func (m *Message) Body() (Body, error) {
	p := m.properties()
	if p.Contains(PidTagBody) {
		return Body{Format: BodyPlain, Text: p.String(PidTagBody)}, nil
	}
	if p.Contains(PidTagHtml) {
		v, err := p.Get(PidTagHtml)
		if err != nil {
			return Body{}, err
		}
		return Body{Format: BodyHTML, Bytes: v.Raw}, nil
	}
	if p.Contains(PidTagRtfCompressed) {
		v, err := p.Get(PidTagRtfCompressed)
		if err != nil {
			return Body{}, err
		}
		return decompressRTFBody(v.Raw)
	}
	return Body{}, nil
}

// recipientTableNID and attachmentTableNID are this message's sub-node
// tree entries for its recipient and attachment tables. The real format's
// sub-node ids for these tables are fixed local constants; we derive them
// from the message's own NID index via WithType, which keeps each
// message's recipient/attachment tables distinguishable within its own
// sub-node tree (a fresh namespace per spec I3) without requiring a
// separate allocator — a deliberate simplification in the absence of real
// PST test vectors to pin the exact well-known sub-NID values against.
func (m *Message) recipientTableNID() format.NID {
	return m.nid.WithType(format.NIDTypeRecipientTable)
}

func (m *Message) attachmentTableNID() format.NID {
	return m.nid.WithType(format.NIDTypeAttachmentTable)
}

// Recipients returns the message's recipient rows, in stored order.
func (m *Message) Recipients() ([]*Recipient, error) {
	tc, err := m.file.tc(m.src, m.recipientTableNID())
	if err != nil {
		return nil, err
	}
	rows, err := tc.Rows()
	if err != nil {
		return nil, err
	}
	out := make([]*Recipient, 0, len(rows))
	for _, rowID := range rows {
		row, err := tc.Row(rowID)
		if err != nil {
			continue
		}
		out = append(out, &Recipient{row: row})
	}
	return out, nil
}

// Attachments returns the message's attachment rows, in stored order.
func (m *Message) Attachments() ([]*Attachment, error) {
	tc, err := m.file.tc(m.src, m.attachmentTableNID())
	if err != nil {
		return nil, err
	}
	rows, err := tc.Rows()
	if err != nil {
		return nil, err
	}
	out := make([]*Attachment, 0, len(rows))
	for _, rowID := range rows {
		row, err := tc.Row(rowID)
		if err != nil {
			continue
		}
		out = append(out, &Attachment{
			file: m.file,
			// The attachment object sharing this row's detail lives under
			// the owning message's sub-node tree, addressed by the row id
			// (spec §4.8 "Attachment": "AttachDataBinary or
			// AttachDataObject resolves to ... a sub-node stream").
			objectNID: format.NID(rowID),
			ownerSrc:  m.src,
			row:       row,
		})
	}
	return out, nil
}
