//go:build !(darwin || linux)

package core

import "os"

// mapFile falls back to reading the whole file on platforms without a
// memory-mapping implementation.
func mapFile(f *os.File, path string, _ int64) (*Input, error) {
	return readFile(f, path)
}
