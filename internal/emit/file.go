// Package emit implements the two output paths of spec §4.7-4.8: a
// binary-search-bounded file emitter for memory-mapped, seekable inputs,
// and a sequential-scan stream emitter for stdin.
package emit

import (
	"io"

	"github.com/abbat/timegrep/internal/linescan"
	"github.com/abbat/timegrep/internal/mmapfile"
	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgerr"
)

// chunkSize is the nominal write granularity of spec §4.7.
const chunkSize = 512 * 1024

// File emits data[lo:hi) to w, where [lo, hi) is located by two binary
// searches bracketing [start, stop), grounded on the original
// tg_file_timegrep. matched is false when the first search finds nothing
// in range (nothing is written).
func File(w io.Writer, mf *mmapfile.File, compiled *strptimere.Compiled, start, stop int64) (matched bool, err error) {
	data := mf.Bytes()

	lo, loOutcome, err := linescan.BinarySearch(data, 0, start, compiled)
	if err != nil {
		return false, err
	}
	if loOutcome != linescan.Found {
		return false, nil
	}

	hi, hiOutcome, err := linescan.BinarySearch(data, lo, stop, compiled)
	if err != nil {
		return false, err
	}
	if hiOutcome != linescan.Found {
		hi = len(data)
	}

	lboundAligned := mmapfile.PageAlign(lo)
	lbound := lo
	for lbound < hi {
		actual := chunkSize
		if lbound+actual >= hi {
			actual = hi - lbound
		}

		n, werr := writeFull(w, data[lbound:lbound+actual])
		lbound += n
		if werr != nil {
			return false, tgerr.Wrap(tgerr.IoError, werr, "writing matched range")
		}

		if lboundAligned+chunkSize < lbound {
			uboundAligned := mmapfile.PageAlign(lbound)
			if lboundAligned < uboundAligned {
				mf.ReleaseBefore(uboundAligned)
			}
			lboundAligned = uboundAligned
		}
	}

	if hi == len(data) {
		if _, werr := writeFull(w, []byte{'\n'}); werr != nil {
			return false, tgerr.Wrap(tgerr.IoError, werr, "writing trailing newline")
		}
	}

	return true, nil
}

// writeFull loops on w.Write, honoring partial writes, until buf is fully
// written or an error occurs (spec §4.7's "partial writes are honored").
func writeFull(w io.Writer, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}
