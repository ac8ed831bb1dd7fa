package rtf

import (
	"encoding/binary"

	"github.com/mbranch/pstkit/internal/crc32pst"
	"github.com/mbranch/pstkit/internal/format"
)

// CompressLiteral builds a well-formed MS-OXRTFCP stream that encodes raw
// entirely as literals (no back-references). It exists to produce test
// fixtures for the decompressor; production pstkit only ever reads
// RtfCompressed properties, never writes them.
func CompressLiteral(raw []byte) []byte {
	var payload []byte
	for i := 0; i < len(raw); i += 8 {
		end := i + 8
		if end > len(raw) {
			end = len(raw)
		}
		chunk := raw[i:end]
		payload = append(payload, 0x00) // flags: all-literal
		payload = append(payload, chunk...)
	}

	header := make([]byte, format.RTFHeaderSize)
	binary.LittleEndian.PutUint32(header[format.RTFCompSizeOff:], uint32(len(payload)+12))
	binary.LittleEndian.PutUint32(header[format.RTFRawSizeOff:], uint32(len(raw)))
	copy(header[format.RTFCompTypeOff:], format.RTFCompTypeLZFu[:])
	binary.LittleEndian.PutUint32(header[format.RTFCRCOff:], crc32pst.Checksum(payload))

	return append(header, payload...)
}

// CompressUncompressed builds an MS-OXRTFCP stream whose compType is MELA,
// carrying raw verbatim.
func CompressUncompressed(raw []byte) []byte {
	header := make([]byte, format.RTFHeaderSize)
	binary.LittleEndian.PutUint32(header[format.RTFCompSizeOff:], uint32(len(raw)+12))
	binary.LittleEndian.PutUint32(header[format.RTFRawSizeOff:], uint32(len(raw)))
	copy(header[format.RTFCompTypeOff:], format.RTFCompTypeMELA[:])
	binary.LittleEndian.PutUint32(header[format.RTFCRCOff:], crc32pst.Checksum(raw))
	return append(header, raw...)
}
