package core

import (
	"fmt"
	"io"
	"os"
)

// Input is a cookie file held in memory, either mapped or read.
type Input struct {
	Path string

	// Method is "mmap" or "read".
	Method string

	data    []byte
	release func() error
}

// Bytes returns the file contents. They are only valid until Close.
func (in *Input) Bytes() []byte { return in.data }

// Close releases the contents. After Close, slices obtained from Bytes
// must not be used.
func (in *Input) Close() error {
	if in.release == nil {
		return nil
	}
	release := in.release
	in.release = nil
	in.data = nil
	return release()
}

// Open acquires the contents of path. When mapped is true and the
// platform supports it, the file is memory-mapped read-only; otherwise
// it is read in full.
func Open(path string, mapped bool) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: OpOpen, Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IOError{Op: OpStat, Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, &IOError{Op: OpStat, Path: path, Err: fmt.Errorf("not a regular file (%s)", info.Mode().Type())}
	}

	if mapped && info.Size() > 0 {
		return mapFile(f, path, info.Size())
	}
	return readFile(f, path)
}

func readFile(f *os.File, path string) (*Input, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, &IOError{Op: OpRead, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &IOError{Op: OpClose, Path: path, Err: err}
	}
	return &Input{Path: path, Method: "read", data: data}, nil
}
