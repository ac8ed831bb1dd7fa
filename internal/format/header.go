package format

import (
	"bytes"
	"fmt"

	"github.com/mbranch/pstkit/internal/buf"
)

// Header captures the minimal subset of the PST/OST file header required to
// traverse a store. The diagram below highlights the offsets we care about.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   4    '!' 'B' 'D' 'N'
//	 0x004   4    Partial CRC
//	 0x008   2    'S' 'M' (client magic)
//	 0x00A   2    wVer -- selects the on-disk Variant
//	 0x00C   2    wVerClient
//	 0x00E   1    Platform (create)
//	 0x00F   1    Platform (access)
//	 var.    var  Root block: BREF to NBT root, BREF to BBT root, root NID,
//	              total file size -- sized per Variant
//
// All multi-byte fields are little-endian.
type Header struct {
	Variant     Variant
	CRCPartial  uint32
	VerClient   uint16
	NBTRootPage uint64 // absolute file offset of the NBT root page
	BBTRootPage uint64 // absolute file offset of the BBT root page
	RootNID     uint32 // NID of the message-store root node
	FileSize    uint64
	CryptMethod uint8 // file-wide block cipher selector, see blockcipher.Method
}

// ParseHeader validates and extracts key fields from a PST/OST header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("pst header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[HeaderMagicOffset:HeaderMagicOffset+len(Magic)], Magic) {
		return Header{}, fmt.Errorf("pst header: %w", ErrSignatureMismatch)
	}
	if !bytes.Equal(b[HeaderClientMagicOffset:HeaderClientMagicOffset+len(ClientMagic)], ClientMagic) {
		return Header{}, fmt.Errorf("pst header: %w", ErrSignatureMismatch)
	}
	crc := buf.U32LE(b[HeaderCRCPartialOffset:])
	ver := buf.U16LE(b[HeaderVersionOffset:])
	verClient := buf.U16LE(b[HeaderClientVerOffset:])

	var variant Variant
	switch {
	case ver == VersionANSI:
		variant = VariantANSI
	case ver == VersionUnicode:
		variant = VariantUnicode
	case ver == VersionUnicode4K:
		variant = VariantUnicode4K
	default:
		return Header{}, fmt.Errorf("pst header: version %d: %w", ver, ErrUnsupportedVersion)
	}

	rootOff := HeaderRootOffsetUnicode
	bidSize, ibSize := BIDSizeUnicode, IBSizeUnicode
	if variant == VariantANSI {
		rootOff = HeaderRootOffsetANSI
		bidSize, ibSize = BIDSizeANSI, IBSizeANSI
	}

	readWidth := func(off int, width int) (uint64, error) {
		chunk, ok := buf.Slice(b, off, width)
		if !ok {
			return 0, fmt.Errorf("pst header: %w", ErrTruncated)
		}
		switch width {
		case 4:
			return uint64(buf.U32LE(chunk)), nil
		case 8:
			return buf.U64LE(chunk), nil
		default:
			return 0, fmt.Errorf("pst header: unsupported field width %d", width)
		}
	}

	pos := rootOff
	// BREF = BID (variant-sized) + IB absolute offset (variant-sized); we only
	// need the IB half to seek the root pages.
	pos += bidSize
	nbtRoot, err := readWidth(pos, ibSize)
	if err != nil {
		return Header{}, err
	}
	pos += ibSize

	pos += bidSize
	bbtRoot, err := readWidth(pos, ibSize)
	if err != nil {
		return Header{}, err
	}
	pos += ibSize

	rootNIDRaw, err := readWidth(pos, 4)
	if err != nil {
		return Header{}, err
	}
	pos += 4

	fileSize, err := readWidth(pos, ibSize)
	if err != nil {
		return Header{}, err
	}

	var cryptMethod uint8
	if chunk, ok := buf.Slice(b, HeaderCryptMethodOffset, 1); ok {
		cryptMethod = chunk[0]
	}

	return Header{
		Variant:     variant,
		CRCPartial:  crc,
		VerClient:   verClient,
		NBTRootPage: nbtRoot,
		BBTRootPage: bbtRoot,
		RootNID:     uint32(rootNIDRaw),
		FileSize:    fileSize,
		CryptMethod: cryptMethod,
	}, nil
}
