//go:build unix

// Package mmap provides the anonymous memory mapping used to back the
// simulator's managed buffer when configured.
package mmap

import (
	"golang.org/x/sys/unix"
)

// MapAnon reserves size bytes of private, zero-filled read/write memory.
func MapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// Unmap releases a region obtained from MapAnon.
func Unmap(data []byte) error {
	return unix.Munmap(data)
}
