package store

import "github.com/mbranch/pstkit/ltp"

// Recipient is a row projected from a message's recipient table (spec §3
// "Recipient / Attachment"). Its fields are all TC columns — as with an
// Attachment, a recipient's properties come from its table row alone and
// no separate PC is opened.
type Recipient struct {
	row map[uint32]ltp.PropertyValue
}

// DisplayName returns PidTagRecipientDisplay, falling back to
// PidTagDisplayName.
func (r *Recipient) DisplayName() string {
	p := r.properties()
	if s := p.String(PidTagRecipientDisplay); s != "" {
		return s
	}
	return p.String(PidTagDisplayName)
}

// EmailAddress returns PidTagEmailAddress.
func (r *Recipient) EmailAddress() string {
	return r.properties().String(PidTagEmailAddress)
}

// Type returns PidTagRecipientType (RecipientTo/Cc/Bcc).
func (r *Recipient) Type() int64 {
	return r.properties().Int(PidTagRecipientType)
}

// Properties returns the recipient row's PropertySet.
func (r *Recipient) Properties() PropertySet {
	return r.properties()
}

func (r *Recipient) properties() PropertySet {
	return newRowPropertySet(r.row)
}
