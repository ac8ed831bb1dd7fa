package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/ltp"
)

func TestRecipientDisplayNameFallback(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagDisplayName: {Tag: PidTagDisplayName, Type: format.PtypString, Raw: utf16Bytes(t, "Jane Doe")},
	}
	r := &Recipient{row: row}
	assert.Equal(t, "Jane Doe", r.DisplayName())
}

func TestRecipientDisplayNamePrefersRecipientDisplay(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagDisplayName:      {Tag: PidTagDisplayName, Type: format.PtypString, Raw: utf16Bytes(t, "Jane Doe")},
		PidTagRecipientDisplay: {Tag: PidTagRecipientDisplay, Type: format.PtypString, Raw: utf16Bytes(t, "Jane")},
	}
	r := &Recipient{row: row}
	assert.Equal(t, "Jane", r.DisplayName())
}

func TestRecipientType(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagRecipientType: {Tag: PidTagRecipientType, Type: format.PtypInteger32, Int: RecipientCc},
	}
	r := &Recipient{row: row}
	assert.EqualValues(t, RecipientCc, r.Type())
}

func TestAttachmentIsEmbeddedMessage(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagAttachMethod: {Tag: PidTagAttachMethod, Type: format.PtypInteger32, Int: AttachMethodByEmbedded},
	}
	a := &Attachment{row: row}
	assert.True(t, a.IsEmbeddedMessage())
}

func TestAttachmentFilenameFallback(t *testing.T) {
	row := map[uint32]ltp.PropertyValue{
		PidTagAttachFilename: {Tag: PidTagAttachFilename, Type: format.PtypString, Raw: utf16Bytes(t, "A.TXT")},
	}
	a := &Attachment{row: row}
	assert.Equal(t, "A.TXT", a.Filename())
}
