// Package format houses low-level decoders for the MS-PST on-disk format.
// The goal is to keep the parsing focused, allocation-free where possible,
// and independent from the public API so higher-level packages (ndb, ltp)
// can orchestrate the data in a more ergonomic form.
package format

// Variant distinguishes the two on-disk layouts a PST/OST file may use.
// Structure sizes (BID, NID references, BREFs) scale with the variant.
type Variant int

const (
	// VariantANSI is the legacy 32-bit-offset layout (Outlook 97-2002).
	VariantANSI Variant = iota
	// VariantUnicode is the 64-bit-offset layout (Outlook 2003+).
	VariantUnicode
	// VariantUnicode4K is VariantUnicode with 4 KiB pages (Outlook 2010+).
	VariantUnicode4K
)

var (
	// Magic is the 4-byte signature at the start of every PST/OST file.
	Magic = []byte{'!', 'B', 'D', 'N'}

	// ClientMagic is the 2-byte "client signature" following the CRC.
	ClientMagic = []byte{'S', 'M'}
)

const (
	// HeaderSize is the size in bytes of the fixed file header. Both variants
	// reserve a full 512-byte unit for it; Unicode variants pad the unused tail.
	HeaderSize = 512

	// Header field offsets common to both variants.
	HeaderMagicOffset       = 0x00 // 4 bytes, "!BDN"
	HeaderCRCPartialOffset  = 0x04 // 4 bytes, CRC-32 of bytes [0x08:0x0C) region markers
	HeaderClientMagicOffset = 0x08 // 2 bytes, "SM"
	HeaderVersionOffset     = 0x0A // 2 bytes, wVer: selects Variant
	HeaderClientVerOffset   = 0x0C // 2 bytes, wVerClient
	HeaderPlatformCreate    = 0x0E // 1 byte
	HeaderPlatformAccess    = 0x0F // 1 byte
	// HeaderCryptMethodOffset holds the file-wide block cipher selector
	// (see internal/blockcipher.Method): 0=none, 1=Permute, 2=Cyclic.
	HeaderCryptMethodOffset = 0x1CA // 1 byte, bCryptMethod

	// wVer values that select the on-disk Variant.
	VersionANSI        = 14
	VersionUnicode      = 23
	VersionUnicode4K    = 24

	// The root block reference (BREF to the NBT root page, BREF to the BBT
	// root page, root message-store NID) lives at a variant-sized offset
	// following the fixed preamble above.
	HeaderRootOffsetANSI     = 0x0C0
	HeaderRootOffsetUnicode  = 0x0D0

	// Fields within the root block, relative to the root offset. The NBT/BBT
	// root references are BREFs (BID + absolute-equivalent page offset); the
	// message-store root is carried as a plain NID.
	RootNBTOffset     = 0x00 // BREF: NBT root page
	RootBBTOffset     = 0x00 // sized block follows NBTOffset; computed per variant
	RootFileEOFOffset = 0x00 // total file size, sized per variant

	// BREF sizes per variant: BID + IB (file offset), both scaled by variant.
	BIDSizeANSI      = 4
	BIDSizeUnicode   = 8
	IBSizeANSI       = 4
	IBSizeUnicode    = 8
	BREFSizeANSI     = BIDSizeANSI + IBSizeANSI
	BREFSizeUnicode  = BIDSizeUnicode + IBSizeUnicode
)

// BlockSize is the fixed unit all pages and blocks are padded to on disk.
const BlockSize = 512

// BlockTrailerSize is the size of the 16-byte trailer every block/page carries.
const BlockTrailerSize = 16

// Block trailer field offsets, relative to the end of the block minus
// BlockTrailerSize.
const (
	TrailerCbOffset       = 0x00 // 2 bytes: logical size of the block's data
	TrailerSigOffset      = 0x02 // 2 bytes: per-block-type signature
	TrailerCRCOffset      = 0x04 // 4 bytes: CRC-32 (PST variant) over the data
	TrailerBIDOffset      = 0x08 // 4 or 8 bytes depending on variant: this block's BID
)

// Block signatures (the 2-byte TrailerSigOffset field for leaf/internal data
// blocks; NBT/BBT page signatures are distinct and checked by ndb directly).
const (
	BlockSigData     = 0x0000 // plain leaf data block (no dedicated signature byte pattern)
	BlockSigXBlock   = 0x0001 // internal data-tree block (list of child BIDs), one level
	BlockSigXXBlock  = 0x0002 // internal data-tree block, two levels deep
)

// NID (node id) layout: low 5 bits are the node type, high 27 bits the index.
const (
	NIDTypeMask  = 0x1F
	NIDIndexMask = ^uint32(0) &^ NIDTypeMask
	NIDIndexShift = 5
)

// Node types (low 5 bits of a NID).
const (
	NIDTypeHierarchyTable     = 0x01
	NIDTypeContentsTable      = 0x02
	NIDTypeAssocContentsTable = 0x03
	NIDTypeSearchFolder       = 0x04
	NIDTypeFolder             = 0x05
	NIDTypeMessage            = 0x06
	NIDTypeAttachment         = 0x07
	NIDTypeSearchUpdateQueue  = 0x08
	NIDTypeSearchCriteria     = 0x09
	NIDTypeRecipientTable     = 0x0B
	NIDTypeAttachmentTable    = 0x0C
	NIDTypeLTPNameToIDMap     = 0x0F
	NIDTypeNormalFolder       = 0x0A
)

// Special NIDs: fixed, well-known indices reserved by the format.
const (
	NIDMessageStore   uint32 = 0x21
	NIDRootFolder     uint32 = 0x22
	NIDNameToIDMap    uint32 = 0x61
)

// BID low-bit flag: distinguishes internal (data-tree) blocks from leaves in
// some encodings (see BID.IsInternal).
const BIDInternalFlag = 0x01

// PropertyTag layout: high 16 bits are the property id, low 16 the type.
const (
	PropIDShift = 16
	PropTypeMask = 0xFFFF
)

// Property types (PtypXxx), the low 16 bits of a property tag.
const (
	PtypInteger16       uint16 = 0x0002
	PtypInteger32       uint16 = 0x0003
	PtypFloating32      uint16 = 0x0004
	PtypFloating64      uint16 = 0x0005
	PtypCurrency        uint16 = 0x0006
	PtypFloatingTime    uint16 = 0x0007
	PtypErrorCode       uint16 = 0x000A
	PtypBoolean         uint16 = 0x000B
	PtypObject          uint16 = 0x000D
	PtypInteger64       uint16 = 0x0014
	PtypString8         uint16 = 0x001E
	PtypString          uint16 = 0x001F
	PtypTime            uint16 = 0x0040
	PtypGuid            uint16 = 0x0048
	PtypBinary          uint16 = 0x0102
	PtypMultipleInteger16 uint16 = 0x1002
	PtypMultipleInteger32 uint16 = 0x1003
	PtypMultipleString8   uint16 = 0x101E
	PtypMultipleString    uint16 = 0x101F
	PtypMultipleTime      uint16 = 0x1040
	PtypMultipleBinary    uint16 = 0x1102
	PtypMultipleGuid      uint16 = 0x1048
	PtypMultipleInteger64 uint16 = 0x1014

	// MultiValueFlag: set in the type's high nibble family to mark a
	// multi-valued property (mirrors the 0x1000 bit used above).
	MultiValueFlag uint16 = 0x1000
)

// HN (Heap-on-Node) constants.
const (
	HNPageSignature       = 0xEC // byte at offset 0 of every heap page
	HNPageHeaderSize      = 0x08 // signature, client sig, page-map offset (2), root HID (4)
	HNPageMapOffsetField  = 0x02 // offset (relative to page start) of the page-map pointer, 2 bytes... see hn.go for exact layout
	HNClientSigOffset     = 0x01 // 1 byte: PC=0xBC, TC=0x7C, other=BTH-only
	HNClientSigPC         = 0xBC
	HNClientSigTC         = 0x7C
)

// BTH (B-Tree-on-Heap) header layout, within the BTH header allocation.
const (
	BTHHeaderSignature = 0xB5
	BTHHeaderSize      = 0x08 // sig, key-size, value-size, depth, root HID
)

// PC (Property Context) BTH key/value widths. The BTH key is the full
// 4-byte property tag (property id in the high 16 bits, type in the low
// 16, see PropIDShift) rather than the bare property id, so a lookup
// already knows the type it's decoding without a side table.
const (
	PCKeySize   = 4 // full property tag
	PCValueSize = 8 // fixed 8-byte value record
)

// TC (Table Context) constants.
const (
	TCSignature          = 0x7C
	TCHeaderSize         = 0x16 // signature, column count, column-descriptor array offset, etc. (see tc.go)
	TCColumnDescSize     = 0x08 // property tag (4) + offset (2) + width (1) + bitmap index (1)
)

// HID (heap allocation id): (page index << 16) | (allocation index << 5) | type bits.
const (
	HIDTypeMask  = 0x1F
	HIDAllocMask = 0xFFE0
	HIDAllocShift = 5
	HIDPageShift  = 16

	// HIDTypeHID marks a reference as a plain heap allocation id: bit 0 of
	// a PC/TC variable-length value record is clear. A set bit 0 marks an
	// NID (sub-node) reference instead.
	HIDTypeHID = 0x0
)

// MS-OXRTFCP (RTF compression) header layout.
const (
	RTFHeaderSize   = 16
	RTFCompSizeOff  = 0x00 // 4 bytes LE: size of the compressed payload + 12 (trailing header fields)
	RTFRawSizeOff   = 0x04 // 4 bytes LE: size of the decompressed output
	RTFCompTypeOff  = 0x08 // 4 bytes: "LZFu" or "MELA"
	RTFCRCOff       = 0x0C // 4 bytes LE: CRC-32 (PST variant) over the compressed payload

	// RTFDictionarySize is the circular dictionary's fixed capacity.
	RTFDictionarySize = 4096
)

var (
	RTFCompTypeLZFu = [4]byte{'L', 'Z', 'F', 'u'}
	RTFCompTypeMELA = [4]byte{'M', 'E', 'L', 'A'}
)

// RTFPrelude is the 207-byte constant ASCII dictionary seed mandated by
// MS-OXRTFCP. Every LZFu stream is decompressed against a dictionary that
// starts with exactly this text.
const RTFPrelude = "{\\rtf1\\ansi\\mac\\deff0\\deftab720{\\fonttbl;}" +
	"{\\f0\\fnil \\froman \\fswiss \\fmodern \\fscript \\fdecor MS Sans SerifSymbolArialTimes New RomanCourier" +
	"{\\colortbl\\red0\\green0\\blue0\n\n\\par \\pard\\plain\\f0\\fs20\\b\\i\\u\\tab\\tx"

// PasswordCRCTag is the property tag (property id 0x67FF, PtypInteger32;
// PidTagStoreLockedBy / legacy PST-password-CRC slot) consulted by the
// password gate (spec §4.8).
const PasswordCRCTag uint32 = 0x67FF<<PropIDShift | uint32(PtypInteger32)
