// Package ndb implements the Node Database layer of a PST/OST file: header
// parsing, descent of the Node-BTree (NBT) and Block-BTree (BBT),
// reconstruction of logical byte streams from data-block trees (leaf
// blocks and XBLOCK/XXBLOCK chains), sub-node tree resolution, and a
// bounded block/BBT-entry cache.
//
// Every byte-layout decision (header fields, page footers, trailer
// layout) is delegated to internal/format; ndb owns tree descent, caching
// and the CRC/deobfuscation pipeline applied to each block as it is read.
package ndb
