package store

import (
	"strings"

	"github.com/mbranch/pstkit/internal/format"
)

// Folder is bound to a folder NID (spec §3 "Folder").
type Folder struct {
	file *File
	nid  format.NID
}

// DisplayName returns the folder's PidTagDisplayName property.
func (f *Folder) DisplayName() string {
	return f.properties().String(PidTagDisplayName)
}

// MessageCount returns the folder's PidTagContentCount property.
func (f *Folder) MessageCount() int64 {
	return f.properties().Int(PidTagContentCount)
}

// UnreadCount returns the folder's PidTagContentUnreadCount property.
func (f *Folder) UnreadCount() int64 {
	return f.properties().Int(PidTagContentUnreadCount)
}

// Path returns the folder's display-name path from the root folder,
// joined by "/", walking up via each NBT entry's parent NID (spec §3 "NBT
// entry": "NID -> (data-BID, sub-node-BID, parent-NID)", spec §6
// "Folder.path"). The root folder itself reports "/".
func (f *Folder) Path() (string, error) {
	if f.nid == format.NID(format.NIDRootFolder) {
		return "/", nil
	}
	names := []string{f.DisplayName()}
	nid := f.nid
	for {
		entry, err := f.file.ndb.LookupNode(nid)
		if err != nil {
			return "", err
		}
		if entry.Parent == format.NID(format.NIDRootFolder) || entry.Parent == 0 {
			break
		}
		parent := &Folder{file: f.file, nid: entry.Parent}
		names = append([]string{parent.DisplayName()}, names...)
		nid = entry.Parent
	}
	return "/" + strings.Join(names, "/"), nil
}

// Properties returns the folder node's own PropertySet.
func (f *Folder) Properties() PropertySet {
	return f.properties()
}

func (f *Folder) properties() PropertySet {
	pc, err := f.file.pcFor(f.nid)
	if err != nil {
		return emptyPropertySet()
	}
	return newPCPropertySet(pc)
}

// Folders returns the folder's child folders, in hierarchy-table stored
// order (spec §4.8 "Folder": "hierarchy table is the TC at NID-type
// NID_TYPE_HIERARCHY_TABLE | index(N)").
func (f *Folder) Folders() ([]*Folder, error) {
	hier := f.nid.WithType(format.NIDTypeHierarchyTable)
	tc, err := f.file.tcTopLevel(hier)
	if err != nil {
		return nil, err
	}
	rows, err := tc.Rows()
	if err != nil {
		return nil, err
	}
	// Hierarchy-table rows are keyed by the child folder's own NID (not a
	// bare index), so the row id is used directly rather than reassembled
	// via WithType.
	out := make([]*Folder, 0, len(rows))
	for _, rowID := range rows {
		out = append(out, &Folder{file: f.file, nid: format.NID(rowID)})
	}
	return out, nil
}

// Messages returns the folder's contents, in contents-table stored order.
func (f *Folder) Messages() ([]*Message, error) {
	return f.messagesFrom(format.NIDTypeContentsTable)
}

// AssociatedContents returns the folder's FAI (folder-associated
// information) contents table, alongside the regular Messages table
// (spec §12 supplement: "a 'complete' folder binding doesn't silently
// drop a table the format defines").
func (f *Folder) AssociatedContents() ([]*Message, error) {
	return f.messagesFrom(format.NIDTypeAssocContentsTable)
}

func (f *Folder) messagesFrom(tableType uint32) ([]*Message, error) {
	table := f.nid.WithType(tableType)
	tc, err := f.file.tcTopLevel(table)
	if err != nil {
		return nil, err
	}
	rows, err := tc.Rows()
	if err != nil {
		return nil, err
	}
	// Contents-table rows are keyed by the message's own NID directly, the
	// same convention as the hierarchy table's folder rows.
	out := make([]*Message, 0, len(rows))
	for _, rowID := range rows {
		nid := format.NID(rowID)
		out = append(out, &Message{file: f.file, nid: nid, src: f.file.sourceForNID(nid)})
	}
	return out, nil
}

func emptyPropertySet() PropertySet {
	return newRowPropertySet(nil)
}
