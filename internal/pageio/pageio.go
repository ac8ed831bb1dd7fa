// Package pageio provides mutex-guarded, non-aliasing random access to a
// PST/OST file (spec §4.1 "Paged I/O"). Unlike the teacher's
// internal/mmfile, which maps a whole hive into memory and hands callers
// slices that alias the mapping, pageio always copies: every Read returns
// a buffer the caller owns outright, safe to hold or mutate across
// concurrent callers without a second look at the file's lifetime.
package pageio

import (
	"fmt"
	"os"
	"sync"
)

// Pager serializes reads against a single open file handle. A Pager is
// safe for concurrent use; callers never see partially-overlapping reads.
type Pager struct {
	mu   sync.Mutex
	file *os.File
	size int64
}

// Open opens path for paged reading and takes an advisory shared lock
// (see lock_unix.go) so a second reader can open the same file
// concurrently but a writer elsewhere is discouraged from doing so while
// this Pager is alive.
func Open(path string) (*Pager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := lockShared(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("pageio: lock %s: %w", path, err)
	}
	return &Pager{file: f, size: info.Size()}, nil
}

// Size returns the file's total byte length, fixed at Open time.
func (p *Pager) Size() int64 {
	return p.size
}

// Read returns a freshly-allocated copy of the n bytes at offset off. It
// fails with ErrTruncated when the requested range runs past end of
// file, and with ErrClosed once Close has been called.
func (p *Pager) Read(off int64, n int) ([]byte, error) {
	if n < 0 || off < 0 {
		return nil, fmt.Errorf("pageio: negative offset/length")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return nil, ErrClosed
	}
	if off+int64(n) > p.size {
		return nil, ErrTruncated
	}
	buf := make([]byte, n)
	if _, err := p.file.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("pageio: read at %d: %w", off, err)
	}
	return buf, nil
}

// Close releases the lock and closes the underlying file. Subsequent
// Read calls fail with ErrClosed.
func (p *Pager) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}
