//go:build unix

package pageio

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockShared takes a non-blocking advisory shared (read) lock on f. A
// second pstkit process opening the same store concurrently succeeds;
// one already holding an exclusive lock (e.g. a repair tool) causes this
// to fail fast rather than silently reading a file mid-rewrite.
func lockShared(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB)
}
