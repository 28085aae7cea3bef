//go:build darwin || linux

package core

import (
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f read-only and private. The file stays open until the
// mapping is released; both are released by Input.Close.
func mapFile(f *os.File, path string, size int64) (*Input, error) {
	if size > math.MaxInt {
		return readFile(f, path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, &IOError{Op: OpMap, Path: path, Err: err}
	}

	release := func() error {
		var first error
		if err := unix.Munmap(data); err != nil {
			first = &IOError{Op: OpUnmap, Path: path, Err: err}
		}
		if err := f.Close(); err != nil && first == nil {
			first = &IOError{Op: OpClose, Path: path, Err: err}
		}
		return first
	}

	return &Input{Path: path, Method: "mmap", data: data, release: release}, nil
}
