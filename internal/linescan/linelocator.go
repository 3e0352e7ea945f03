package linescan

import "bytes"

// LocateLine finds the line containing position p in data (spec §4.4),
// grounded on the original tg_get_string: a byte-slice equivalent of
// memrchr/memchr bracketing around p.
//
// If data[p] is itself a newline, OnDelimiter is returned (the caller is
// sitting exactly on a delimiter, not inside a line). If no newline exists
// anywhere in data, Unbounded is returned (the whole buffer is one line).
// Otherwise Found is returned with the half-open line bounds [start, end),
// excluding the delimiter itself.
func LocateLine(data []byte, p int) (start, end int, outcome Outcome) {
	if data[p] == '\n' {
		return 0, 0, OnDelimiter
	}

	if i := bytes.LastIndexByte(data[:p], '\n'); i >= 0 {
		start = i + 1
	} else {
		start = 0
	}

	if i := bytes.IndexByte(data[p:], '\n'); i >= 0 {
		end = p + i
	} else {
		end = len(data)
	}

	if end-start == len(data) {
		return 0, 0, Unbounded
	}

	return start, end, Found
}
