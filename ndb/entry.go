package ndb

import (
	"github.com/mbranch/pstkit/internal/buf"
	"github.com/mbranch/pstkit/internal/format"
)

// NBTEntry is a decoded Node-BTree leaf entry: NID -> (data-BID,
// sub-node-BID, parent-NID) (spec §3 "NBT entry").
type NBTEntry struct {
	NID     format.NID
	DataBID format.BID
	SubBID  format.BID // zero when the node has no sub-node tree
	Parent  format.NID
}

// BBTEntry is a decoded Block-BTree leaf entry: BID -> (offset, size,
// refcount) (spec §3 "BBT entry"). RefCount is read but never validated
// against, per the spec's open question.
type BBTEntry struct {
	BID      format.BID
	Offset   int64
	Size     uint16
	RefCount uint16
}

// nbtLeafSize and bbtLeafSize return the full leaf-entry width for NBT and
// BBT pages under variant; internal pages use internalEntrySize.
func nbtLeafSize(variant format.Variant) int {
	if variant == format.VariantANSI {
		return 16 // nid(4) + bidData(4) + bidSub(4) + nidParent(4)
	}
	return 32 // nid(8, low 32 used) + bidData(8) + bidSub(8) + nidParent(4) + pad(4)
}

func bbtLeafSize(variant format.Variant) int {
	if variant == format.VariantANSI {
		return 12 // bid(4) + ib(4) + cb(2) + cRef(2)
	}
	return 24 // bid(8) + ib(8) + cb(2) + cRef(2) + pad(4)
}

// internalEntrySize is shared by NBT and BBT internal pages: a key
// followed by a BREF (child page pointer).
func internalEntrySize(variant format.Variant) int {
	if variant == format.VariantANSI {
		return 12 // key(4) + BREF{bid(4)+ib(4)}
	}
	return 24 // key(8) + BREF{bid(8)+ib(8)}
}

func decodeNBTLeaf(e []byte, variant format.Variant) NBTEntry {
	if variant == format.VariantANSI {
		return NBTEntry{
			NID:     format.NID(buf.U32LE(e[0:])),
			DataBID: format.BID(buf.U32LE(e[4:])),
			SubBID:  format.BID(buf.U32LE(e[8:])),
			Parent:  format.NID(buf.U32LE(e[12:])),
		}
	}
	return NBTEntry{
		NID:     format.NID(buf.U64LE(e[0:])),
		DataBID: format.BID(buf.U64LE(e[8:])),
		SubBID:  format.BID(buf.U64LE(e[16:])),
		Parent:  format.NID(buf.U32LE(e[24:])),
	}
}

func decodeBBTLeaf(e []byte, variant format.Variant) BBTEntry {
	if variant == format.VariantANSI {
		return BBTEntry{
			BID:      format.BID(buf.U32LE(e[0:])),
			Offset:   int64(buf.U32LE(e[4:])),
			Size:     buf.U16LE(e[8:]),
			RefCount: buf.U16LE(e[10:]),
		}
	}
	return BBTEntry{
		BID:      format.BID(buf.U64LE(e[0:])),
		Offset:   int64(buf.U64LE(e[8:])),
		Size:     buf.U16LE(e[16:]),
		RefCount: buf.U16LE(e[18:]),
	}
}

// internalKey reads the ordering key and child-page offset from an
// internal-page entry.
func internalKey(e []byte, variant format.Variant) (key uint64, childOffset int64) {
	if variant == format.VariantANSI {
		return uint64(buf.U32LE(e[0:])), int64(buf.U32LE(e[8:]))
	}
	return buf.U64LE(e[0:]), int64(buf.U64LE(e[16:]))
}
