package store

import "github.com/mbranch/pstkit/internal/format"

// PropertyTag is a 32-bit MAPI property tag: property id in the high 16
// bits, property type in the low 16 (spec §3 "Property tag").
type PropertyTag = uint32

func tag(id uint32, ptype uint16) PropertyTag {
	return id<<format.PropIDShift | uint32(ptype)
}

// Well-known MS-OXPROPS tags used throughout the store layer, named by
// their canonical MS-OXPROPS identifiers (matching the reference
// outlook-msg-parser property catalogue's per-tag PR_* naming).
var (
	PidTagDisplayName          = tag(0x3001, format.PtypString)
	PidTagSubject              = tag(0x0037, format.PtypString)
	PidTagSenderName           = tag(0x0C1A, format.PtypString)
	PidTagSenderEmailAddress   = tag(0x0C1F, format.PtypString)
	PidTagDisplayTo            = tag(0x0E04, format.PtypString)
	PidTagDisplayCc            = tag(0x0E03, format.PtypString)
	PidTagDisplayBcc           = tag(0x0E02, format.PtypString)
	PidTagClientSubmitTime     = tag(0x0039, format.PtypTime)
	PidTagMessageDeliveryTime  = tag(0x0E06, format.PtypTime)

	PidTagBody           = tag(0x1000, format.PtypString)
	PidTagHtml           = tag(0x1013, format.PtypBinary)
	PidTagRtfCompressed  = tag(0x1009, format.PtypBinary)

	PidTagContentCount       = tag(0x3602, format.PtypInteger32)
	PidTagContentUnreadCount = tag(0x3603, format.PtypInteger32)

	PidTagRecipientType    = tag(0x0C15, format.PtypInteger32)
	PidTagEmailAddress     = tag(0x3003, format.PtypString)
	PidTagRecipientDisplay = tag(0x5FF6, format.PtypString)

	PidTagAttachFilename      = tag(0x3704, format.PtypString)
	PidTagAttachLongFilename  = tag(0x3707, format.PtypString)
	PidTagAttachMimeTag       = tag(0x370E, format.PtypString)
	PidTagAttachSize          = tag(0x0E20, format.PtypInteger32)
	PidTagAttachMethod        = tag(0x3705, format.PtypInteger32)
	PidTagAttachDataBinary    = tag(0x3701, format.PtypBinary)
	PidTagAttachDataObject    = tag(0x3701, format.PtypObject)
	PidTagAttachNumber        = tag(0x0E21, format.PtypInteger32)

	// PasswordCRCTag is PidTagStoreLockedBy's legacy slot: a 32-bit CRC of
	// the store password (spec §4.8, format.PasswordCRCTag).
	PasswordCRCTag = format.PasswordCRCTag
)

// AttachMethod values (MS-OXCMSG "PidTagAttachMethod").
const (
	AttachMethodNone       = 0
	AttachMethodByValue    = 1
	AttachMethodByEmbedded = 5 // embedded message (store.Attachment.EmbeddedMessage)
)

// RecipientType values (MS-OXCMSG "PidTagRecipientType").
const (
	RecipientTo  = 1
	RecipientCc  = 2
	RecipientBcc = 3
)
