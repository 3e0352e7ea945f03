// Package tgcontext implements the datetime extractor of spec §4.3: given
// a compiled format (internal/strptimere) and a line of text, it locates
// the embedded timestamp and converts it to an epoch second.
package tgcontext

import (
	"github.com/abbat/timegrep/internal/decode"
	"github.com/abbat/timegrep/internal/localtz"
	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgerr"
)

// Extract runs compiled's regex against line and, on a match, resolves the
// embedded timestamp to an epoch second. found is false (with a nil err)
// when the regex simply does not match the line — that is not an error,
// per spec §4.3's three-way outcome (a non-matching line is skipped, not
// rejected). A matched line whose captured token decodes to nothing a
// token decoder recognizes (BadArg/BadTimezone — e.g. a %Z zone name
// strptimere's shape-only regex admits but decode.Timezone can't resolve)
// is the same case: spec §4.3 step 3 calls it a strptime failure, and
// spec §7 names it a data-plane recoverable, so it downgrades to
// found=false rather than propagating as err. Only RegexEngine/IoError/
// OutOfMemory kinds — engine-level failures, not data shape — propagate.
func Extract(compiled *strptimere.Compiled, line []byte) (epoch int64, found bool, err error) {
	loc := compiled.Regex.FindSubmatchIndex(line)
	if loc == nil {
		return 0, false, nil
	}

	var f fields
	if compiled.Fallback {
		matched := line[loc[0]:loc[1]]
		f, err = reparse(compiled.Format, matched)
	} else {
		f, err = decodeDirect(compiled, loc, line)
		if err == nil {
			f.resolveYear()
			f.resolveHour()
		}
	}
	if err != nil {
		if tgerr.Is(err, tgerr.BadArg) || tgerr.Is(err, tgerr.BadTimezone) {
			return 0, false, nil
		}
		return 0, false, err
	}

	if f.hasTimestamp {
		return f.timestamp, true, nil
	}

	offset := localtz.Offset()
	if f.tzPresent {
		offset = f.tzOffset
	}
	return f.toUnix(offset), true, nil
}

// decodeDirect reads the named capture groups straight out of the regex
// match, for the common (non-fallback) case where every present directive
// maps to exactly one unambiguous capture (spec §4.3 step 2).
func decodeDirect(compiled *strptimere.Compiled, loc []int, line []byte) (fields, error) {
	f := defaultFields()

	group := func(k strptimere.Kind) (string, bool) {
		idx := compiled.GroupIndex[k]
		if idx < 0 || loc[2*idx] < 0 {
			return "", false
		}
		return string(line[loc[2*idx]:loc[2*idx+1]]), true
	}

	if tok, ok := group(strptimere.Year); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.year = v
	}
	if tok, ok := group(strptimere.Month); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.month = v - 1
	}
	if tok, ok := group(strptimere.MonthT); ok {
		v, err := decode.Month(tok)
		if err != nil {
			return f, err
		}
		f.month = v
	}
	if tok, ok := group(strptimere.Day); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.day = v
	}
	if tok, ok := group(strptimere.Hour); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.hour = v
	}
	if tok, ok := group(strptimere.Minute); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.minute = v
	}
	if tok, ok := group(strptimere.Second); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.second = v
	}
	if tok, ok := group(strptimere.Timezone); ok {
		off, err := decode.Timezone(tok)
		if err != nil {
			return f, err
		}
		f.tzOffset, f.tzPresent = off, true
	}
	if tok, ok := group(strptimere.Timestamp); ok {
		v, err := decode.Int(tok)
		if err != nil {
			return f, err
		}
		f.timestamp, f.hasTimestamp = int64(v), true
	}

	return f, nil
}
