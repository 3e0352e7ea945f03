// Package strptimere compiles a subset of strptime-style datetime format
// strings into a Go regexp with named capture groups, per spec §4.1.
package strptimere

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abbat/timegrep/internal/tgerr"
)

// Kind enumerates the nine capture kinds named in spec §3's group_index.
type Kind int

const (
	Year Kind = iota
	Month
	MonthT
	Day
	Hour
	Minute
	Second
	Timezone
	Timestamp
	numKinds
)

var kindNames = [numKinds]string{
	Year: "year", Month: "month", MonthT: "month_t", Day: "day",
	Hour: "hour", Minute: "minute", Second: "second",
	Timezone: "timezone", Timestamp: "timestamp",
}

// Absent is the sentinel used in GroupIndex when a kind has no capture.
const Absent = -1

// Compiled is the immutable-after-construction parser context of spec §3.
type Compiled struct {
	Format            string
	RegexStr          string
	Regex             *regexp.Regexp
	GroupIndex        [numKinds]int
	Fallback          bool
	FormatHasTimezone bool
}

// regex fragments, copied verbatim from spec §4.1's translation table.
const (
	dayClass    = `[1-2][0-9]|3[0-1]|0?[1-9]`
	hourClass   = `1[0-9]|2[0-3]|0?[0-9]`
	minuteClass = `[1-5][0-9]|0?[0-9]`
	secondClass = `[1-5][0-9]|60|0?[0-9]`
	monthClass  = `1[0-2]|0?[1-9]`
)

var weekdayAlt = strings.Join([]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}, "|")

var monthAlt = strings.Join([]string{
	"January", "February", "March", "April", "May", "June", "July",
	"August", "September", "October", "November", "December",
	"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Sept", "Oct", "Nov", "Dec",
}, "|")

// timezoneAlt matches the accepted shapes from spec §4.2: signed offsets,
// the military single-letter codes (A-Z excluding J), and the named
// abbreviation set.
var timezoneAlt = `[+-]\d{2}:?\d{2}|[A-IK-Za-ik-z]|Z|UTC|UT|GMT|EST|EDT|CST|CDT|MST|MDT|PST|PDT`

const zoneNameClass = `[A-Za-z0-9_/+\-]+`

// metaEscape is the regex-meta set spec §4.1 requires literal bytes to be escaped against.
const metaEscape = `^$|()[]{}.*+?\`

// compiler accumulates state across one compile() call.
type compiler struct {
	buf      strings.Builder
	counts   [numKinds]int
	fallback bool
	dupSeq   [numKinds]int // how many times each kind has already been named, for unique dup names
}

// Compile translates format into a regex and metadata (spec §4.1).
//
// Go's regexp package (RE2) does not permit duplicate named capture
// groups the way PCRE's dupnames option does. When a kind recurs within
// one format (itself a fallback-forcing condition per spec §4.1), later
// occurrences are given a unique, unexposed name (e.g. "year_dup2")
// instead of reusing "year" — the regex still compiles deterministically
// and the per-kind counts are unaffected, but only the first occurrence's
// group index is ever recorded in GroupIndex (fallback is forced anyway,
// so GroupIndex is not consulted for a duplicated kind).
func Compile(format string) (*Compiled, error) {
	c := &compiler{}
	if err := c.translate(format); err != nil {
		return nil, err
	}

	rx, err := regexp.Compile(c.buf.String())
	if err != nil {
		return nil, tgerr.Wrap(tgerr.RegexEngine, err, "compiling generated regex")
	}

	fallback := c.fallback
	for k := Kind(0); k < numKinds; k++ {
		if c.counts[k] > 1 {
			fallback = true
		}
	}
	if c.counts[Month] > 0 && c.counts[MonthT] > 0 {
		fallback = true
	}
	if c.counts[Timestamp] > 0 {
		for k := Kind(0); k < numKinds; k++ {
			if k == Timestamp {
				continue
			}
			if c.counts[k] > 0 {
				fallback = true
			}
		}
	}

	compiled := &Compiled{
		Format:            format,
		RegexStr:          c.buf.String(),
		Regex:             rx,
		Fallback:          fallback,
		FormatHasTimezone: c.counts[Timezone] > 0,
	}
	names := rx.SubexpNames()
	for k := Kind(0); k < numKinds; k++ {
		compiled.GroupIndex[k] = Absent
	}
	for i, n := range names {
		for k := Kind(0); k < numKinds; k++ {
			if n == kindNames[k] {
				compiled.GroupIndex[k] = i
			}
		}
	}
	return compiled, nil
}

func (c *compiler) capture(kind Kind, class string) {
	c.counts[kind]++
	name := kindNames[kind]
	if c.dupSeq[kind] > 0 {
		name = fmt.Sprintf("%s_dup%d", kindNames[kind], c.dupSeq[kind]+1)
	}
	c.dupSeq[kind]++
	fmt.Fprintf(&c.buf, "(?P<%s>%s)", name, class)
}

func (c *compiler) literal(s string) {
	c.buf.WriteString(s)
}

func (c *compiler) nonCapture(class string) {
	fmt.Fprintf(&c.buf, "(?:%s)", class)
}

// translate walks format, appending regex fragments to c.buf and updating
// c.counts/c.fallback. It recurses for compound directives (spec §4.1).
func (c *compiler) translate(format string) error {
	rs := []rune(format)
	for i := 0; i < len(rs); i++ {
		ch := rs[i]
		if ch != '%' {
			if strings.ContainsRune(metaEscape, ch) {
				c.literal(`\` + string(ch))
			} else {
				c.literal(string(ch))
			}
			continue
		}
		i++
		if i >= len(rs) {
			return tgerr.New(tgerr.BadFormat, "trailing % in format")
		}
		d := rs[i]
		switch d {
		case '%':
			c.literal(`%`)
		case 'a', 'A':
			c.fallback = true
			c.nonCapture(weekdayAlt)
		case 'b', 'B', 'h':
			c.capture(MonthT, monthAlt)
		case 'c':
			if err := c.translate("%x %X"); err != nil {
				return err
			}
		case 'C':
			c.fallback = true
			c.nonCapture(`\d{1,2}`)
		case 'd', 'e':
			c.capture(Day, dayClass)
		case 'D':
			if err := c.translate("%m/%d/%y"); err != nil {
				return err
			}
		case 'H':
			c.capture(Hour, hourClass)
		case 'I':
			c.fallback = true
			c.nonCapture(`1[0-2]|0?[1-9]`)
		case 'j':
			c.fallback = true
			c.nonCapture(`[1-9]|[1-9][0-9]|[1-2][0-9]{2}|3[0-5][0-9]|36[0-6]`)
		case 'm':
			c.capture(Month, monthClass)
		case 'M':
			c.capture(Minute, minuteClass)
		case 'n', 't':
			c.literal(`\s`)
		case 'p':
			c.fallback = true
			c.nonCapture(`AM|PM`)
		case 'r':
			if err := c.translate("%I:%M:%S %p"); err != nil {
				return err
			}
		case 'R':
			if err := c.translate("%H:%M"); err != nil {
				return err
			}
		case 'S':
			c.capture(Second, secondClass)
		case 'T', 'X':
			if err := c.translate("%H:%M:%S"); err != nil {
				return err
			}
		case 'U', 'W', 'V':
			c.fallback = true
			c.nonCapture(`[0-4]?[0-9]|5[0-3]`)
		case 'w':
			c.fallback = true
			c.nonCapture(`[0-6]`)
		case 'u':
			c.fallback = true
			c.nonCapture(`[1-7]`)
		case 'x', 'F':
			if err := c.translate("%Y-%m-%d"); err != nil {
				return err
			}
		case 'y', 'g':
			c.fallback = true
			c.nonCapture(`\d{1,2}`)
		case 'Y':
			c.capture(Year, `\d{4}`)
		case 'G':
			c.fallback = true
			c.nonCapture(`\d{4}`)
		case 'z':
			c.capture(Timezone, timezoneAlt)
		case 'Z':
			c.fallback = true
			c.capture(Timezone, zoneNameClass)
		case 's':
			c.capture(Timestamp, `\d{1,20}`)
		case 'E', 'O':
			return tgerr.New(tgerr.BadFormat, fmt.Sprintf("modifier %%%c not supported", d))
		default:
			return tgerr.New(tgerr.BadFormat, fmt.Sprintf("unknown directive %%%c", d))
		}
	}
	return nil
}
