//go:build unix

package confstore

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes a blocking advisory lock on f and returns its release func.
func lockFile(f *os.File, exclusive bool) (func() error, error) {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	fd := int(f.Fd())
	for {
		err := unix.Flock(fd, how)
		if err == nil {
			break
		}
		if err != unix.EINTR {
			return nil, &os.PathError{Op: "flock", Path: f.Name(), Err: err}
		}
	}

	return func() error {
		return unix.Flock(fd, unix.LOCK_UN)
	}, nil
}
