// Package decode implements the tiny token decoders of spec §4.2:
// converting matched substrings into integers, month indices, and
// timezone offsets.
package decode

import (
	"strconv"

	"github.com/abbat/timegrep/internal/tgerr"
)

// Int parses a non-negative base-10 integer, failing on a negative value
// or one that overflows int (spec §4.2, grounded on the C original's
// tg_atoi / strtol(...)+range-check, and equivalent to the teacher's own
// reliance on strconv for integer conversion).
func Int(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, tgerr.Wrap(tgerr.BadArg, err, "parsing integer token "+s)
	}
	if v < 0 {
		return 0, tgerr.New(tgerr.BadArg, "negative integer token "+s)
	}
	return v, nil
}

// Month dispatches on the first character of s, then sub-dispatches on
// the second/third, per spec §4.2. Requires len(s) >= 3. Returns a
// zero-based month (0 == January).
func Month(s string) (int, error) {
	if len(s) < 3 {
		return 0, tgerr.New(tgerr.BadArg, "month token too short: "+s)
	}
	switch s[0] {
	case 'J', 'j':
		switch s[1] {
		case 'a', 'A':
			return 0, nil // Jan
		default:
			if s[2] == 'n' || s[2] == 'N' {
				return 5, nil // Jun
			}
			return 6, nil // Jul
		}
	case 'F', 'f':
		return 1, nil // Feb
	case 'M', 'm':
		switch s[2] {
		case 'r', 'R':
			return 2, nil // Mar
		default:
			return 4, nil // May
		}
	case 'A', 'a':
		switch s[1] {
		case 'p', 'P':
			return 3, nil // Apr
		default:
			return 7, nil // Aug
		}
	case 'S', 's':
		return 8, nil // Sep(t)
	case 'O', 'o':
		return 9, nil // Oct
	case 'N', 'n':
		return 10, nil // Nov
	case 'D', 'd':
		return 11, nil // Dec
	}
	return 0, tgerr.New(tgerr.BadArg, "unrecognized month token: "+s)
}

// military maps the RFC-822 single-letter zone codes to hours east of UTC.
// J is excluded per spec §4.2.
var military = map[byte]int{
	'A': -1, 'B': -2, 'C': -3, 'D': -4, 'E': -5, 'F': -6, 'G': -7,
	'H': -8, 'I': -9, 'K': -10, 'L': -11, 'M': -12,
	'N': 1, 'O': 2, 'P': 3, 'Q': 4, 'R': 5, 'S': 6, 'T': 7, 'U': 8,
	'V': 9, 'W': 10, 'X': 11, 'Y': 12,
	'Z': 0,
}

var namedZones = map[string]int{
	"UT": 0, "UTC": 0, "GMT": 0,
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
}

// Timezone decodes a matched timezone token into seconds east of UTC,
// per the shapes enumerated in spec §4.2.
func Timezone(s string) (int, error) {
	switch len(s) {
	case 0:
		return 0, tgerr.New(tgerr.BadTimezone, "empty timezone token")
	case 1:
		if off, ok := military[s[0]]; ok {
			return off * 3600, nil
		}
		return 0, tgerr.New(tgerr.BadTimezone, "unknown military zone: "+s)
	case 5:
		// +-HHMM
		return parseSignedOffset(s[0], s[1:3], s[3:5])
	case 6:
		// +-HH:MM
		if s[3] != ':' {
			break
		}
		return parseSignedOffset(s[0], s[1:3], s[4:6])
	}
	if len(s) >= 2 {
		if off, ok := namedZones[s]; ok {
			return off * 3600, nil
		}
	}
	return 0, tgerr.New(tgerr.BadTimezone, "unrecognized timezone shape: "+s)
}

func parseSignedOffset(sign byte, hh, mm string) (int, error) {
	if sign != '+' && sign != '-' {
		return 0, tgerr.New(tgerr.BadTimezone, "timezone missing sign")
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, tgerr.Wrap(tgerr.BadTimezone, err, "parsing timezone hour")
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, tgerr.Wrap(tgerr.BadTimezone, err, "parsing timezone minute")
	}
	total := h*3600 + m*60
	if sign == '-' {
		total = -total
	}
	return total, nil
}
