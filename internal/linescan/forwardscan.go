package linescan

import (
	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgcontext"
)

// ForwardScan walks forward from position in data, starting at each
// located line, extracting a timestamp until one is found or the upper
// bound is reached (spec §4.5), grounded on the original tg_forward_search.
//
// Found returns the line's bounds and timestamp. NotFound means no
// parseable line remained before ubound. Unbounded means the located line
// never terminates (single-line buffer) before a timestamp was found.
func ForwardScan(data []byte, ubound, position int, compiled *strptimere.Compiled) (start, end int, ts int64, outcome Outcome, err error) {
	for position < ubound {
		s, e, lineOutcome := LocateLine(data, position)
		switch lineOutcome {
		case Unbounded:
			return 0, 0, 0, Unbounded, nil
		case OnDelimiter:
			position++
			continue
		}

		value, found, extractErr := tgcontext.Extract(compiled, data[s:e])
		if extractErr != nil {
			return 0, 0, 0, NotFound, extractErr
		}
		if found {
			return s, e, value, Found, nil
		}

		position = e + 1
	}

	return 0, 0, 0, NotFound, nil
}
