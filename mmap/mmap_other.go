//go:build !unix && !windows

package mmap

import (
	"io"
	"os"
)

func readFile(f *os.File, size int64) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, err
	}
	return b, nil
}

func unmap(_ []byte) error {
	return nil
}
