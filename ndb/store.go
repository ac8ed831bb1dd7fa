package ndb

import (
	goerrors "errors"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/blockcipher"
	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/internal/pageio"
)

// defaultCacheBytes bounds the decoded-leaf-payload cache; defaultEntryCap
// bounds the resolved-BBT-entry cache (spec §4.4 "Caching").
const (
	defaultCacheBytes = 16 << 20
	defaultEntryCap   = 4096
)

// Store is the NDB-layer handle over an open PST/OST file: header,
// pager, and the two bounded caches tree descent and data-stream
// assembly share.
type Store struct {
	pager  *pageio.Pager
	header format.Header
	blocks *blockCache
	bbts   *bbtEntryCache
}

// Open parses the file header from pager and constructs a Store ready
// for NBT/BBT lookups.
func Open(pager *pageio.Pager) (*Store, error) {
	raw, err := pager.Read(0, format.HeaderSize)
	if err != nil {
		return nil, pstkiterrors.Wrap(pstkiterrors.KindIO, "read header", err)
	}
	hdr, err := format.ParseHeader(raw)
	if err != nil {
		if goerrors.Is(err, format.ErrUnsupportedVersion) {
			return nil, pstkiterrors.Wrap(pstkiterrors.KindUnsupportedVersion, "parse header", err)
		}
		return nil, pstkiterrors.Wrap(pstkiterrors.KindBadMagic, "parse header", err)
	}
	return &Store{
		pager:  pager,
		header: hdr,
		blocks: newBlockCache(defaultCacheBytes),
		bbts:   newBBTEntryCache(defaultEntryCap),
	}, nil
}

// Header returns the parsed file header.
func (s *Store) Header() format.Header { return s.header }

// Variant reports the file's ANSI/Unicode/Unicode4K variant.
func (s *Store) Variant() format.Variant { return s.header.Variant }

// LookupNode resolves nid's NBT entry.
func (s *Store) LookupNode(nid format.NID) (NBTEntry, error) {
	return LookupNBT(s.pager, s.header.Variant, int64(s.header.NBTRootPage), nid)
}

// ReadNodeData reconstructs the logical data stream for nid's data-BID.
func (s *Store) ReadNodeData(nid format.NID) ([]byte, error) {
	entry, err := s.LookupNode(nid)
	if err != nil {
		return nil, err
	}
	if entry.DataBID == 0 {
		return nil, pstkiterrors.ErrNotFound
	}
	return s.readBID(entry.DataBID)
}

// ReadSubNode resolves childNID within parentNID's sub-node tree and
// returns its reconstructed data stream (spec §4.4, I3: "Sub-node NIDs
// are resolved only through the parent's sub-node tree, never the global
// NBT").
func (s *Store) ReadSubNode(parentNID, childNID format.NID) ([]byte, error) {
	parent, err := s.LookupNode(parentNID)
	if err != nil {
		return nil, err
	}
	if parent.SubBID == 0 {
		return nil, pstkiterrors.ErrNotFound
	}
	entry, err := resolveSubNode(s.readBID, s.header.Variant, parent.SubBID, childNID)
	if err != nil {
		return nil, err
	}
	return s.readBID(entry.DataBID)
}

// SubNodeEntry resolves childNID within parentNID's sub-node tree without
// reading its data, e.g. to discover a nested sub-node tree (attachments
// carry a sub-node tree of their own).
func (s *Store) SubNodeEntry(parentNID, childNID format.NID) (SubNodeEntry, error) {
	parent, err := s.LookupNode(parentNID)
	if err != nil {
		return SubNodeEntry{}, err
	}
	if parent.SubBID == 0 {
		return SubNodeEntry{}, pstkiterrors.ErrNotFound
	}
	return resolveSubNode(s.readBID, s.header.Variant, parent.SubBID, childNID)
}

func (s *Store) readBID(bid format.BID) ([]byte, error) {
	return AssembleDataStream(s.pager, s.header.Variant, int64(s.header.BBTRootPage), s.blocks, s.bbts, blockcipher.Method(s.header.CryptMethod), bid)
}

// ReadBID reconstructs the logical data stream for an arbitrary BID
// resolved outside the NBT — e.g. a SubNodeEntry's DataBID captured
// directly by the caller rather than re-resolved through ReadSubNode.
// Embedded-message attachments need this: the embedded message's own
// node lives only in its owning message's sub-node tree, so its data-BID
// is obtained once via SubNodeEntry and read directly thereafter.
func (s *Store) ReadBID(bid format.BID) ([]byte, error) {
	return s.readBID(bid)
}

// ReadSubNodeFromRoot resolves childNID within the sub-node tree rooted
// at subRootBID directly, without an owning-NID NBT lookup. Used to
// descend a nested sub-node tree reached via a SubNodeEntry.SubBID (an
// embedded message's own recipient/attachment tables) rather than a
// top-level node's NID.
func (s *Store) ReadSubNodeFromRoot(subRootBID format.BID, childNID format.NID) ([]byte, error) {
	entry, err := resolveSubNode(s.readBID, s.header.Variant, subRootBID, childNID)
	if err != nil {
		return nil, err
	}
	return s.readBID(entry.DataBID)
}

// SubNodeEntryFromRoot is ReadSubNodeFromRoot's entry-only counterpart,
// for callers that need the child's BIDs without reading its data yet.
func (s *Store) SubNodeEntryFromRoot(subRootBID format.BID, childNID format.NID) (SubNodeEntry, error) {
	return resolveSubNode(s.readBID, s.header.Variant, subRootBID, childNID)
}
