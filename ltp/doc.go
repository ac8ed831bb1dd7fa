// Package ltp implements the three structured readers layered on NDB byte
// streams (spec §4.5-§4.6): the Heap-on-Node (HN), the B-Tree-on-Heap
// (BTH), and the Property Context (PC) / Table Context (TC) that sit on
// top of a BTH.
//
// Every reader here operates on an already-assembled NDB byte stream
// (ndb.Store.ReadNodeData/ReadSubNode); ltp has no knowledge of NID/BID
// resolution beyond the SubNodeResolver callback PC/TC use to pull
// sub-node-backed variable-length values and overflow table rows.
package ltp
