//go:build !unix

package pageio

import "os"

// lockShared is a no-op on platforms without flock semantics; the Pager's
// own mutex is still sufficient for pstkit's single-process read model.
func lockShared(f *os.File) error {
	return nil
}
