// Copyright © 2017 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package gpio

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Open and memory map the GPIO register window from /dev/gpiomem.
func Open() (*Chip, error) {
	return OpenPath("/dev/gpiomem")
}

// OpenPath memory maps the GPIO register window from the named device.
func OpenPath(path string) (*Chip, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mem8, err := unix.Mmap(
		int(file.Fd()),
		0,
		memLength,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	mem := unsafe.Slice((*uint32)(unsafe.Pointer(&mem8[0])), len(mem8)/4)
	return newChip(mem, func() error { return unix.Munmap(mem8) }), nil
}
