package tgcontext

import (
	"regexp"
	"strings"

	"github.com/abbat/timegrep/internal/decode"
	"github.com/abbat/timegrep/internal/tgerr"
)

// anchored consumption patterns, mirroring strptimere's emission
// fragments but anchored to the front of the remaining text so the
// fallback walker can consume a directive's value without relying on
// named capture groups (several fallback-forcing directives, like %j or
// %C, have no capture group at all in the compiled regex).
var (
	reDay      = regexp.MustCompile(`^(?:[1-2][0-9]|3[0-1]|0?[1-9])`)
	reHour     = regexp.MustCompile(`^(?:1[0-9]|2[0-3]|0?[0-9])`)
	reHour12   = regexp.MustCompile(`^(?:1[0-2]|0?[1-9])`)
	reMinute   = regexp.MustCompile(`^(?:[1-5][0-9]|0?[0-9])`)
	reSecond   = regexp.MustCompile(`^(?:[1-5][0-9]|60|0?[0-9])`)
	reMonthNum = regexp.MustCompile(`^(?:1[0-2]|0?[1-9])`)
	reYear4    = regexp.MustCompile(`^\d{4}`)
	reYear2    = regexp.MustCompile(`^\d{1,2}`)
	reAMPM     = regexp.MustCompile(`^(?:AM|PM|am|pm)`)
	reYday     = regexp.MustCompile(`^(?:[1-9]|[1-9][0-9]|[1-2][0-9]{2}|3[0-5][0-9]|36[0-6])`)
	reWeekNum  = regexp.MustCompile(`^(?:[0-4]?[0-9]|5[0-3])`)
	reWday1    = regexp.MustCompile(`^[0-6]`)
	reWday2    = regexp.MustCompile(`^[1-7]`)
	reTZ       = regexp.MustCompile(`^(?:[+-]\d{2}:?\d{2}|[A-IK-Za-ik-z]|Z|UTC|UT|GMT|EST|EDT|CST|CDT|MST|MDT|PST|PDT)`)
	reZoneName = regexp.MustCompile(`^[A-Za-z0-9_/+\-]+`)
	reTimestamp = regexp.MustCompile(`^\d{1,20}`)
	reWhitespace = regexp.MustCompile(`^\s`)
)

var monthAltRe = regexp.MustCompile(`^(?:` + strings.Join([]string{
	"January", "February", "March", "April", "May", "June", "July",
	"August", "September", "October", "November", "December",
	"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Sept", "Oct", "Nov", "Dec",
}, "|") + `)`)

var weekdayAltRe = regexp.MustCompile(`^(?:` + strings.Join([]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}, "|") + `)`)

// reparse walks format and s in lockstep, consuming s according to each
// directive, exactly mirroring the set strptimere.Compile supports. It is
// the Go-native substitute for handing the matched substring to the
// platform strptime (spec §4.3 step 3) — see DESIGN.md, component C.
func reparse(format string, s []byte) (fields, error) {
	f := defaultFields()
	pos := 0
	rs := []rune(format)
	for i := 0; i < len(rs); i++ {
		ch := rs[i]
		if ch != '%' {
			if pos >= len(s) || rune(s[pos]) != ch {
				return f, tgerr.New(tgerr.BadArg, "literal mismatch in fallback reparse")
			}
			pos++
			continue
		}
		i++
		if i >= len(rs) {
			return f, tgerr.New(tgerr.BadFormat, "trailing % in format")
		}
		var err error
		pos, err = consumeDirective(rs[i], format, &f, s, pos)
		if err != nil {
			return f, err
		}
	}
	f.resolveYear()
	f.resolveHour()
	return f, nil
}

func consumeDirective(d rune, format string, f *fields, s []byte, pos int) (int, error) {
	take := func(re *regexp.Regexp) (string, int, error) {
		loc := re.FindIndex(s[pos:])
		if loc == nil {
			return "", pos, tgerr.New(tgerr.BadArg, "no match for directive %"+string(d))
		}
		return string(s[pos+loc[0] : pos+loc[1]]), pos + loc[1], nil
	}

	switch d {
	case '%':
		if pos >= len(s) || s[pos] != '%' {
			return pos, tgerr.New(tgerr.BadArg, "expected literal %")
		}
		return pos + 1, nil
	case 'a', 'A':
		_, np, err := take(weekdayAltRe)
		return np, err
	case 'b', 'B', 'h':
		tok, np, err := take(monthAltRe)
		if err != nil {
			return pos, err
		}
		m, err := decode.Month(tok)
		if err != nil {
			return pos, err
		}
		f.month = m
		return np, nil
	case 'c':
		return reparseInto(f, "%x %X", s, pos)
	case 'C':
		tok, np, err := take(reYear2)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.century, f.hasCentury = v, true
		return np, nil
	case 'd', 'e':
		tok, np, err := take(reDay)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.day = v
		return np, nil
	case 'D':
		return reparseInto(f, "%m/%d/%y", s, pos)
	case 'H':
		tok, np, err := take(reHour)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.hour = v
		return np, nil
	case 'I':
		tok, np, err := take(reHour12)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.hour12, f.hasHour12 = v, true
		return np, nil
	case 'j':
		_, np, err := take(reYday)
		return np, err
	case 'm':
		tok, np, err := take(reMonthNum)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.month = v - 1
		return np, nil
	case 'M':
		tok, np, err := take(reMinute)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.minute = v
		return np, nil
	case 'n', 't':
		_, np, err := take(reWhitespace)
		return np, err
	case 'p':
		tok, np, err := take(reAMPM)
		if err != nil {
			return pos, err
		}
		f.hasAMPM = true
		f.isPM = tok == "PM" || tok == "pm"
		return np, nil
	case 'r':
		return reparseInto(f, "%I:%M:%S %p", s, pos)
	case 'R':
		return reparseInto(f, "%H:%M", s, pos)
	case 'S':
		tok, np, err := take(reSecond)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.second = v
		return np, nil
	case 'T', 'X':
		return reparseInto(f, "%H:%M:%S", s, pos)
	case 'U', 'W', 'V':
		_, np, err := take(reWeekNum)
		return np, err
	case 'w':
		_, np, err := take(reWday1)
		return np, err
	case 'u':
		_, np, err := take(reWday2)
		return np, err
	case 'x', 'F':
		return reparseInto(f, "%Y-%m-%d", s, pos)
	case 'y', 'g':
		tok, np, err := take(reYear2)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.twoDigitYear, f.hasTwoDigit = v, true
		return np, nil
	case 'Y':
		tok, np, err := take(reYear4)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.year = v
		return np, nil
	case 'G':
		_, np, err := take(reYear4)
		return np, err
	case 'z':
		tok, np, err := take(reTZ)
		if err != nil {
			return pos, err
		}
		off, err := decode.Timezone(tok)
		if err != nil {
			return pos, err
		}
		f.tzOffset, f.tzPresent = off, true
		return np, nil
	case 'Z':
		tok, np, err := take(reZoneName)
		if err != nil {
			return pos, err
		}
		off, err := decode.Timezone(tok)
		if err != nil {
			return pos, err
		}
		f.tzOffset, f.tzPresent = off, true
		return np, nil
	case 's':
		tok, np, err := take(reTimestamp)
		if err != nil {
			return pos, err
		}
		v, err := decode.Int(tok)
		if err != nil {
			return pos, err
		}
		f.timestamp, f.hasTimestamp = int64(v), true
		return np, nil
	case 'E', 'O':
		return pos, tgerr.New(tgerr.BadFormat, "modifier not supported")
	}
	return pos, tgerr.New(tgerr.BadFormat, "unknown directive %"+string(d))
}

// reparseInto re-enters reparse for a compound directive's expansion
// (e.g. %c -> "%x %X"), threading the same fields and byte cursor through.
func reparseInto(f *fields, sub string, s []byte, pos int) (int, error) {
	rs := []rune(sub)
	for i := 0; i < len(rs); i++ {
		ch := rs[i]
		if ch != '%' {
			if pos >= len(s) || rune(s[pos]) != ch {
				return pos, tgerr.New(tgerr.BadArg, "literal mismatch in fallback reparse")
			}
			pos++
			continue
		}
		i++
		if i >= len(rs) {
			return pos, tgerr.New(tgerr.BadFormat, "trailing % in format")
		}
		var err error
		pos, err = consumeDirective(rs[i], sub, f, s, pos)
		if err != nil {
			return pos, err
		}
	}
	return pos, nil
}
