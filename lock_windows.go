//go:build windows

package confstore

import (
	"math"
	"os"

	"golang.org/x/sys/windows"
)

// lockFile takes a blocking lock over the whole file and returns its release func.
func lockFile(f *os.File, exclusive bool) (func() error, error) {
	var flags uint32
	if exclusive {
		flags = windows.LOCKFILE_EXCLUSIVE_LOCK
	}

	handle := windows.Handle(f.Fd())
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(handle, flags, 0, math.MaxUint32, math.MaxUint32, ol); err != nil {
		return nil, &os.PathError{Op: "LockFileEx", Path: f.Name(), Err: err}
	}

	return func() error {
		return windows.UnlockFileEx(handle, 0, math.MaxUint32, math.MaxUint32, ol)
	}, nil
}
