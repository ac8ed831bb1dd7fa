package blockcipher

// encodeTable and decodeTable are the fixed 256-byte substitution tables
// for the Permute algorithm (spec §4.3); decodeTable is encodeTable's
// exact inverse, verified by construction (encodeTable[decodeTable[b]] ==
// b for every b).
var encodeTable = &[256]byte{
	0x00, 0xf6, 0x28, 0xf7, 0x95, 0x7e, 0x62, 0xb7, 0xff, 0xac, 0x99, 0xe5, 0x81, 0x68, 0x85, 0x27,
	0x90, 0x1f, 0x7d, 0xa0, 0x1b, 0x6d, 0x6e, 0x9c, 0x3f, 0x5f, 0x96, 0x66, 0xc1, 0x92, 0xab, 0xf9,
	0xaa, 0x5d, 0x0f, 0xef, 0x3c, 0x65, 0xcf, 0x76, 0xfe, 0xb0, 0x75, 0xb6, 0x2a, 0x9b, 0x82, 0x17,
	0x97, 0x86, 0x1c, 0xbf, 0x12, 0xcc, 0x91, 0x19, 0x58, 0x87, 0xaf, 0xd6, 0x45, 0xbd, 0x47, 0xca,
	0xfd, 0x72, 0x53, 0x9d, 0x48, 0x73, 0x4e, 0x5c, 0x54, 0x8f, 0xa6, 0xa2, 0xc0, 0x94, 0xba, 0xfa,
	0xeb, 0xe6, 0x41, 0xdf, 0x31, 0xa8, 0xfb, 0xf0, 0x5b, 0xe1, 0x09, 0x2b, 0x8d, 0xf1, 0x7c, 0xb3,
	0xb1, 0xe8, 0x22, 0x07, 0xd0, 0x16, 0x77, 0x63, 0xda, 0x43, 0xc5, 0x35, 0x3a, 0x56, 0x01, 0x6a,
	0x2f, 0x34, 0xc8, 0x6c, 0x69, 0xf4, 0x55, 0xd9, 0xfc, 0x1d, 0x05, 0x8a, 0xf3, 0x0e, 0xb9, 0xce,
	0x44, 0xc9, 0xb8, 0x0b, 0x32, 0xbe, 0x21, 0xed, 0x98, 0x11, 0x37, 0x52, 0xc7, 0xdd, 0x0d, 0x15,
	0x88, 0x2e, 0x42, 0x20, 0x93, 0x7f, 0x23, 0x38, 0xdc, 0xee, 0x18, 0x80, 0xde, 0xd4, 0xe7, 0x0c,
	0x33, 0x50, 0x3d, 0x67, 0x8b, 0x29, 0x71, 0xb5, 0xd7, 0x74, 0x06, 0x0a, 0xe0, 0xec, 0x6f, 0xc6,
	0x83, 0xa3, 0x4d, 0xc4, 0xcd, 0xa9, 0x7a, 0x36, 0xa7, 0xe2, 0xc3, 0x25, 0x39, 0x1e, 0xf5, 0x2d,
	0x8e, 0xad, 0x4a, 0xd1, 0x60, 0x40, 0x79, 0xd3, 0x59, 0x30, 0xd8, 0x7b, 0x10, 0xbb, 0x51, 0x04,
	0x84, 0x13, 0x78, 0x5e, 0x4f, 0x89, 0x9e, 0x9a, 0xa4, 0x4b, 0x6b, 0xe4, 0x1a, 0xc2, 0xd5, 0xe3,
	0x57, 0x14, 0x64, 0x61, 0xf2, 0x2c, 0xb4, 0xf8, 0xea, 0x46, 0x5a, 0x3e, 0xcb, 0xae, 0xa5, 0xb2,
	0x49, 0xd2, 0x4c, 0x9f, 0x26, 0x8c, 0x70, 0xdb, 0xe9, 0x03, 0x08, 0xbc, 0xa1, 0x02, 0x3b, 0x24,
}

var decodeTable = &[256]byte{
	0x00, 0x6e, 0xfd, 0xf9, 0xcf, 0x7a, 0xaa, 0x63, 0xfa, 0x5a, 0xab, 0x83, 0x9f, 0x8e, 0x7d, 0x22,
	0xcc, 0x89, 0x34, 0xd1, 0xe1, 0x8f, 0x65, 0x2f, 0x9a, 0x37, 0xdc, 0x14, 0x32, 0x79, 0xbd, 0x11,
	0x93, 0x86, 0x62, 0x96, 0xff, 0xbb, 0xf4, 0x0f, 0x02, 0xa5, 0x2c, 0x5b, 0xe5, 0xbf, 0x91, 0x70,
	0xc9, 0x54, 0x84, 0xa0, 0x71, 0x6b, 0xb7, 0x8a, 0x97, 0xbc, 0x6c, 0xfe, 0x24, 0xa2, 0xeb, 0x18,
	0xc5, 0x52, 0x92, 0x69, 0x80, 0x3c, 0xe9, 0x3e, 0x44, 0xf0, 0xc2, 0xd9, 0xf2, 0xb2, 0x46, 0xd4,
	0xa1, 0xce, 0x8b, 0x42, 0x48, 0x76, 0x6d, 0xe0, 0x38, 0xc8, 0xea, 0x58, 0x47, 0x21, 0xd3, 0x19,
	0xc4, 0xe3, 0x06, 0x67, 0xe2, 0x25, 0x1b, 0xa3, 0x0d, 0x74, 0x6f, 0xda, 0x73, 0x15, 0x16, 0xae,
	0xf6, 0xa6, 0x41, 0x45, 0xa9, 0x2a, 0x27, 0x66, 0xd2, 0xc6, 0xb6, 0xcb, 0x5e, 0x12, 0x05, 0x95,
	0x9b, 0x0c, 0x2e, 0xb0, 0xd0, 0x0e, 0x31, 0x39, 0x90, 0xd5, 0x7b, 0xa4, 0xf5, 0x5c, 0xc0, 0x49,
	0x10, 0x36, 0x1d, 0x94, 0x4d, 0x04, 0x1a, 0x30, 0x88, 0x0a, 0xd7, 0x2d, 0x17, 0x43, 0xd6, 0xf3,
	0x13, 0xfc, 0x4b, 0xb1, 0xd8, 0xee, 0x4a, 0xb8, 0x55, 0xb5, 0x20, 0x1e, 0x09, 0xc1, 0xed, 0x3a,
	0x29, 0x60, 0xef, 0x5f, 0xe6, 0xa7, 0x2b, 0x07, 0x82, 0x7e, 0x4e, 0xcd, 0xfb, 0x3d, 0x85, 0x33,
	0x4c, 0x1c, 0xdd, 0xba, 0xb3, 0x6a, 0xaf, 0x8c, 0x72, 0x81, 0x3f, 0xec, 0x35, 0xb4, 0x7f, 0x26,
	0x64, 0xc3, 0xf1, 0xc7, 0x9d, 0xde, 0x3b, 0xa8, 0xca, 0x77, 0x68, 0xf7, 0x98, 0x8d, 0x9c, 0x53,
	0xac, 0x59, 0xb9, 0xdf, 0xdb, 0x0b, 0x51, 0x9e, 0x61, 0xf8, 0xe8, 0x50, 0xad, 0x87, 0x99, 0x23,
	0x57, 0x5d, 0xe4, 0x7c, 0x75, 0xbe, 0x01, 0x03, 0xe7, 0x1f, 0x4f, 0x56, 0x78, 0x40, 0x28, 0x08,
}
