//go:build !unix

// Package mmfile provides anonymous memory mappings used as off-heap backing
// storage for pools of pointer-free elements.
package mmfile

import "fmt"

// Anon allocates size zeroed bytes on the Go heap where anonymous mappings
// are not available.
func Anon(size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("mmfile: negative size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
