package store

import "github.com/mbranch/pstkit/rtf"

// BodyFormat identifies which of a message's three possible body
// properties Body was resolved from (spec §4.8 "Message": "body resolves
// in order PlainBody, HtmlBody, RtfCompressed").
type BodyFormat int

const (
	BodyPlain BodyFormat = iota
	BodyHTML
	BodyRTF
)

// Body is a message's decoded body, in whichever of the three formats it
// was actually stored as.
type Body struct {
	Format BodyFormat
	// Text holds decoded text for BodyPlain and BodyRTF.
	Text string
	// Bytes holds the raw payload for BodyHTML (its declared code page is
	// not modeled; callers needing decoded text for HTML bodies should
	// inspect PidTagInternetCodepage themselves).
	Bytes []byte
}

// decompressRTFBody decompresses a PidTagRtfCompressed payload (MS-OXRTFCP,
// spec §4.7) into a BodyRTF Body whose Text is the decompressed RTF. CRC
// validation is skipped here: a body
// with a mismatched CRC is still the best available rendering of the
// message and is surfaced rather than discarded.
func decompressRTFBody(raw []byte) (Body, error) {
	out, err := rtf.Decompress(raw, false)
	if err != nil {
		return Body{}, err
	}
	return Body{Format: BodyRTF, Text: string(out)}, nil
}
