package ltp

import "errors"

var (
	// ErrInvalidHid indicates an HID referenced an allocation outside its
	// heap's page-map bounds (spec §4.5).
	ErrInvalidHid = errors.New("ltp: invalid hid")
	// ErrInvalidBthHeader indicates a BTH header had out-of-range key or
	// value sizes (spec §4.5).
	ErrInvalidBthHeader = errors.New("ltp: invalid bth header")
)
