//go:build windows

package mmap

import "errors"

var ErrNotSupported = errors.New("mmap not supported on windows")

func MapAnon(size int) ([]byte, error) {
	return nil, ErrNotSupported
}

func Unmap(data []byte) error {
	return nil
}
