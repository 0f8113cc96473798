// Package mmap maps rule list files into memory for reading.
package mmap

import (
	"os"
	"unsafe"
)

// ReadFile maps the named file into memory for reading.
// The returned data must be released with [Unmap].
// An empty file yields empty data and no mapping.
func ReadFile[T ~[]byte | ~string](name string) (data T, err error) {
	f, err := os.Open(name)
	if err != nil {
		return
	}
	defer f.Close()

	fs, err := f.Stat()
	if err != nil {
		return
	}

	size := fs.Size()
	if size == 0 {
		return
	}

	b, err := readFile(f, size)
	if err != nil {
		return
	}
	return *(*T)(unsafe.Pointer(&b)), nil
}

// Unmap removes the memory mapping created by [ReadFile].
func Unmap[T ~[]byte | ~string](data T) error {
	if len(data) == 0 {
		return nil
	}
	return unmap(unsafe.Slice(*(**byte)(unsafe.Pointer(&data)), len(data)))
}
