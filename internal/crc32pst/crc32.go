// Package crc32pst implements the CRC-32 variant used throughout a PST/OST
// file: block-trailer integrity checking and password validation (spec
// §4.2). It is distinct from the standard Ethernet/zlib CRC-32 (IEEE
// 802.3 polynomial) in its polynomial only: it uses the same reflected,
// table-driven algorithm from hash/crc32 with the format's own polynomial.
package crc32pst

import "hash/crc32"

// polynomial is the PST-format CRC-32 generator polynomial, reversed
// representation (spec §4.2: "polynomial and seed as defined by the
// format, distinct from standard Ethernet CRC-32").
const polynomial = 0x00A00805

var table = crc32.MakeTable(polynomial)

// Checksum returns the PST-variant CRC-32 of data.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// Matches reports whether data's checksum equals want.
func Matches(data []byte, want uint32) bool {
	return Checksum(data) == want
}
