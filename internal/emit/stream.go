package emit

import (
	"bytes"
	"io"

	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgcontext"
	"github.com/abbat/timegrep/internal/tgerr"
)

// Stream sequentially scans r (a non-seekable input) line by line,
// emitting lines whose timestamp falls in [start, stop) (spec §4.8),
// grounded on the original tg_stream_timegrep/tg_read_stream_string.
func Stream(w io.Writer, r io.Reader, compiled *strptimere.Compiled, start, stop int64) (matched bool, err error) {
	buf := make([]byte, chunkSize*2)
	lbound, ubound := 0, 0
	streaming := false

	for {
		length, found, rerr := readLine(r, &buf, lbound, &ubound)
		if rerr != nil {
			return matched, tgerr.Wrap(tgerr.IoError, rerr, "reading stream input")
		}
		if !found {
			break
		}

		line := buf[lbound : lbound+length]
		ts, tfound, terr := tgcontext.Extract(compiled, line)
		if terr != nil {
			return matched, terr
		}

		if tfound {
			if ts >= stop {
				break
			}
			if !streaming && ts >= start {
				streaming = true
			}
		}

		if streaming {
			total := length + 1
			n, werr := writeFull(w, buf[lbound:lbound+total])
			lbound += n
			matched = true
			if werr != nil {
				return matched, tgerr.Wrap(tgerr.IoError, werr, "writing stream output")
			}
		} else {
			lbound += length + 1
		}

		if ubound-lbound < lbound {
			copy(buf, buf[lbound:ubound])
			ubound -= lbound
			lbound = 0
		}
	}

	return matched, nil
}

// readLine returns the length of the next complete line (excluding its
// newline) starting at lbound, growing *buf geometrically as needed.
// found is false on a clean EOF with no further newline available.
func readLine(r io.Reader, buf *[]byte, lbound int, ubound *int) (length int, found bool, err error) {
	if idx := bytes.IndexByte((*buf)[lbound:*ubound], '\n'); idx >= 0 {
		return idx, true, nil
	}

	for {
		if len(*buf)-*ubound < chunkSize {
			grown := make([]byte, len(*buf)+chunkSize*2)
			copy(grown, (*buf)[:*ubound])
			*buf = grown
		}

		n, rerr := r.Read((*buf)[*ubound : *ubound+chunkSize])
		if n > 0 {
			idx := bytes.IndexByte((*buf)[*ubound:*ubound+n], '\n')
			*ubound += n
			if idx >= 0 {
				return (*ubound - n + idx) - lbound, true, nil
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return 0, false, nil
			}
			return 0, false, rerr
		}
	}
}
