//go:build linux

/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package mmapfile memory-maps a file read-only for the file emitter (spec
// §4.7): open, stat, map, close the descriptor immediately, process, unmap.
//
// Adapted from the region/fmap pair in the teacher's ipexist package, which
// drove raw SYS_MMAP/SYS_MUNMAP/SYS_MADVISE syscalls directly; here the
// same page-alignment and advise structure is expressed through
// golang.org/x/sys/unix's typed wrappers instead of bare syscall numbers.
package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/abbat/timegrep/internal/tgerr"
)

const pageSize = 4096

// File is a read-only memory mapping of an on-disk file.
type File struct {
	data []byte
	size int
}

// Open stats, maps, and immediately closes the descriptor for path, per
// the resource-discipline rule of spec §5. A zero-length file yields a
// nil File with ok=false; the caller should skip it, not treat it as an error.
func Open(path string) (f *File, ok bool, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, false, tgerr.Wrap(tgerr.IoError, err, "opening "+path)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, false, tgerr.Wrap(tgerr.IoError, err, "stat "+path)
	}
	size := int(info.Size())
	if size == 0 {
		return nil, false, nil
	}

	data, err := unix.Mmap(int(fh.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, false, tgerr.Wrap(tgerr.IoError, err, "mmap "+path)
	}

	return &File{data: data, size: size}, true, nil
}

// Bytes returns the mapped region. The slice is only valid until Close.
func (f *File) Bytes() []byte {
	return f.data
}

// Close unmaps the region.
func (f *File) Close() error {
	if f.data == nil {
		return nil
	}
	err := unix.Munmap(f.data)
	f.data = nil
	if err != nil {
		return tgerr.Wrap(tgerr.IoError, err, "munmap")
	}
	return nil
}

// ReleaseBefore advises the kernel that pages wholly before position are no
// longer needed (spec §4.7's page-boundary release during chunked writes).
// It is purely an optimization; advise failures are not propagated.
func (f *File) ReleaseBefore(position int) {
	aligned := position &^ (pageSize - 1)
	if aligned <= 0 {
		return
	}
	if aligned > len(f.data) {
		aligned = len(f.data) &^ (pageSize - 1)
	}
	if aligned <= 0 {
		return
	}
	_ = unix.Madvise(f.data[:aligned], unix.MADV_DONTNEED)
}

// PageAlign rounds position down to the nearest page boundary.
func PageAlign(position int) int {
	return position &^ (pageSize - 1)
}
