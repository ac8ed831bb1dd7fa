package store

import (
	"sync"

	pstkiterrors "github.com/mbranch/pstkit/errors"
	"github.com/mbranch/pstkit/internal/format"
	"github.com/mbranch/pstkit/internal/pageio"
	"github.com/mbranch/pstkit/ltp"
	"github.com/mbranch/pstkit/ndb"
)

// File is the root handle over an opened PST/OST: backing reader, NDB
// store, and the validated-password flag (spec §3 "File"). Every domain
// entity (Folder, Message, Recipient, Attachment) holds a *File and a NID
// rather than a pointer graph — an arena-and-handle design (spec §9
// "Lazy fields and back-references") that makes lifetime trivially the
// File's: closing it invalidates every handle at once.
type File struct {
	mu       sync.Mutex
	pager    *pageio.Pager
	ndb      *ndb.Store
	disposed bool

	namesOnce   sync.Once
	names       *NamedPropertyMap
	namesLoaded error
}

// Open opens path, parses its NDB header, and runs the password gate
// (spec §4.8). password may be empty when the store is not
// password-protected; if it is and password is empty, Open fails with
// KindPasswordRequired.
func Open(path string, password string) (*File, error) {
	pager, err := pageio.Open(path)
	if err != nil {
		return nil, pstkiterrors.Wrap(pstkiterrors.KindIO, "open file", err)
	}
	return open(pager, password)
}

func open(pager *pageio.Pager, password string) (*File, error) {
	store, err := ndb.Open(pager)
	if err != nil {
		pager.Close()
		return nil, err
	}
	file := &File{pager: pager, ndb: store}
	if err := file.runPasswordGate(password); err != nil {
		pager.Close()
		return nil, err
	}
	return file, nil
}

// runPasswordGate implements spec §4.8's password gate against the
// message-store PC's PasswordCRCTag property.
func (f *File) runPasswordGate(password string) error {
	pc, err := f.pcFor(format.NID(format.NIDMessageStore))
	if err != nil {
		return err
	}
	v, err := pc.Get(PasswordCRCTag)
	if pstkiterrors.Is(err, pstkiterrors.KindNotFound) {
		return nil // unlocked: no stored CRC
	}
	if err != nil {
		return err
	}
	want := uint32(v.Int)
	if want == 0 {
		return nil
	}
	if password == "" {
		return pstkiterrors.New(pstkiterrors.KindPasswordRequired, "store is password-protected")
	}
	if !passwordMatches(want, password) {
		return pstkiterrors.New(pstkiterrors.KindPasswordIncorrect, "password does not match stored CRC")
	}
	return nil
}

// Close releases the backing file. Afterwards, calls on derived entities
// that open a property or table context and return an error (Folders,
// Messages, AssociatedContents, Recipients, Attachments) fail with
// KindDisposed; accessors with no error result (such as Folder.DisplayName)
// return zero values; Folder.Path and Attachment.EmbeddedMessage do not
// check for disposal and fail only when they must read the closed file;
// Recipient and Attachment values already returned keep their row data.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed {
		return nil
	}
	f.disposed = true
	return f.pager.Close()
}

// checkDisposed returns KindDisposed if f has been closed.
func (f *File) checkDisposed() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed {
		return pstkiterrors.ErrDisposed
	}
	return nil
}

// RootFolder returns the store's root folder (special NID
// format.NIDRootFolder).
func (f *File) RootFolder() (*Folder, error) {
	if err := f.checkDisposed(); err != nil {
		return nil, err
	}
	return &Folder{file: f, nid: format.NID(format.NIDRootFolder)}, nil
}

// NamedProperties returns the store's name-to-id map, lazily parsed and
// cached for the File's lifetime (spec §12 "Named-property resolution").
// A store with no named properties at all returns a nil map and no error.
func (f *File) NamedProperties() (*NamedPropertyMap, error) {
	f.namesOnce.Do(func() {
		f.names, f.namesLoaded = loadNamedPropertyMap(f)
	})
	return f.names, f.namesLoaded
}

// nodeSource is the pair of operations every PC/TC opening needs: read
// the node's own data stream, and resolve a reference into its sub-node
// tree. Top-level nodes (reached via the global NBT) and an embedded
// message's node (reached only through its owning attachment's sub-node
// entry) both satisfy this shape, so PC/TC opening is written once
// against the interface rather than against format.NID directly.
type nodeSource struct {
	data    func() ([]byte, error)
	subNode ltp.SubNodeResolver
	// entryFor resolves child to its raw SubNodeEntry (rather than its
	// decoded data), needed when child is itself the root of a nested
	// sub-node tree — e.g. an embedded message's own recipient/attachment
	// tables, or a doubly-embedded message.
	entryFor func(child format.NID) (ndb.SubNodeEntry, error)
}

// sourceForNID builds a nodeSource for a regular, NBT-registered node.
func (f *File) sourceForNID(nid format.NID) nodeSource {
	return nodeSource{
		data: func() ([]byte, error) { return f.ndb.ReadNodeData(nid) },
		subNode: func(child format.NID) ([]byte, error) {
			return f.ndb.ReadSubNode(nid, child)
		},
		entryFor: func(child format.NID) (ndb.SubNodeEntry, error) {
			return f.ndb.SubNodeEntry(nid, child)
		},
	}
}

// sourceForSubNodeEntry builds a nodeSource for a node reached only via a
// SubNodeEntry (an embedded message's own top node, found under its
// attachment's owning message's sub-node tree rather than the global
// NBT — spec §12 "Embedded-message attachments").
func (f *File) sourceForSubNodeEntry(entry ndb.SubNodeEntry) nodeSource {
	return nodeSource{
		data: func() ([]byte, error) { return f.ndb.ReadBID(entry.DataBID) },
		subNode: func(child format.NID) ([]byte, error) {
			return f.ndb.ReadSubNodeFromRoot(entry.SubBID, child)
		},
		entryFor: func(child format.NID) (ndb.SubNodeEntry, error) {
			return f.ndb.SubNodeEntryFromRoot(entry.SubBID, child)
		},
	}
}

// pcFor opens the Property Context for nid's own data stream (not a
// sub-node), resolving variable-length values through nid's sub-node tree.
func (f *File) pcFor(nid format.NID) (*ltp.PC, error) {
	if err := f.checkDisposed(); err != nil {
		return nil, err
	}
	return f.pc(f.sourceForNID(nid))
}

func (f *File) pc(src nodeSource) (*ltp.PC, error) {
	if err := f.checkDisposed(); err != nil {
		return nil, err
	}
	data, err := src.data()
	if err != nil {
		return nil, err
	}
	hn, err := ltp.ParseHN(data)
	if err != nil {
		return nil, err
	}
	return ltp.OpenPC(hn, src.subNode)
}

// tcTopLevel opens the Table Context that is itself a top-level NBT node,
// rather than a sub-node of some owning node — a folder's hierarchy,
// contents, or FAI (associated-contents) table, which the format places
// at its own NID sharing the folder's nidIndex (spec §4.8 "Folder": "the
// TC at NID-type NID_TYPE_HIERARCHY_TABLE | index(N)") rather than inside
// the folder node's sub-node tree. Large row matrices can still be
// sub-node backed under the table's own NID, so the resolver passed to
// OpenTC still goes through the table NID's sub-node tree.
func (f *File) tcTopLevel(tableNID format.NID) (*ltp.TC, error) {
	if err := f.checkDisposed(); err != nil {
		return nil, err
	}
	data, err := f.ndb.ReadNodeData(tableNID)
	if err != nil {
		return nil, err
	}
	hn, err := ltp.ParseHN(data)
	if err != nil {
		return nil, err
	}
	return ltp.OpenTC(hn, f.sourceForNID(tableNID).subNode)
}

// tc opens the Table Context stored as sub-node table of src (a message's
// recipient or attachment table, for top-level and embedded messages
// alike); its sub-node-backed cells resolve through the same src.
func (f *File) tc(src nodeSource, table format.NID) (*ltp.TC, error) {
	if err := f.checkDisposed(); err != nil {
		return nil, err
	}
	data, err := src.subNode(table)
	if err != nil {
		return nil, err
	}
	hn, err := ltp.ParseHN(data)
	if err != nil {
		return nil, err
	}
	return ltp.OpenTC(hn, src.subNode)
}
