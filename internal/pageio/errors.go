package pageio

import "errors"

var (
	// ErrTruncated indicates a read range extends past end of file.
	ErrTruncated = errors.New("pageio: read past end of file")
	// ErrClosed indicates a Read after Close.
	ErrClosed = errors.New("pageio: pager closed")
)
