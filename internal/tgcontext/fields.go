package tgcontext

import "time"

// fields is the broken-down time structure of spec §4.3 step 2. Year is
// kept as an ordinary calendar year here (not year-1900); the C original's
// year-1900 storage is a struct-tm implementation detail, not an
// observable behavior, so long as an unset year still means "1900" (a
// zeroed struct tm has tm_year == 0, i.e. 1900), which defaultFields below
// reproduces.
type fields struct {
	year          int
	month         int // 0-based; 0 == January
	day           int
	hour          int
	hour12        int
	hasHour12     bool
	isPM          bool
	hasAMPM       bool
	minute        int
	second        int
	century       int
	hasCentury    bool
	twoDigitYear  int
	hasTwoDigit   bool
	tzOffset      int
	tzPresent     bool
	timestamp     int64
	hasTimestamp  bool
}

// defaultFields mirrors "memset(&tm, 0, sizeof(struct tm))" from the
// original C (spec §9): year 1900, January, day 0, midnight. Day 0
// normalizes to December 31st, 1899 when no %d/%e is present, as a zeroed
// struct tm does — so a format lacking %Y (e.g. the syslog alias) still
// produces a well-defined, if dateless, timestamp rather than an error.
func defaultFields() fields {
	return fields{year: 1900, month: 0, day: 0, hour: 0, minute: 0, second: 0}
}

// resolveYear folds %C/%y into a final calendar year, applying the POSIX
// pivot (two-digit years 69-99 -> 19xx, 00-68 -> 20xx) when only %y was
// present, and century*100+yy when both %C and %y were present.
func (f *fields) resolveYear() {
	switch {
	case f.hasCentury && f.hasTwoDigit:
		f.year = f.century*100 + f.twoDigitYear
	case f.hasCentury:
		f.year = f.century * 100
	case f.hasTwoDigit:
		if f.twoDigitYear >= 69 {
			f.year = 1900 + f.twoDigitYear
		} else {
			f.year = 2000 + f.twoDigitYear
		}
	}
}

// resolveHour folds a 12-hour + AM/PM pair into 24-hour time when %H
// itself was never supplied.
func (f *fields) resolveHour() {
	if f.hasHour12 && f.hasAMPM {
		h := f.hour12 % 12
		if f.isPM {
			h += 12
		}
		f.hour = h
	}
}

// toUnix assembles the broken-down time into an epoch second, per spec
// §4.3: interpret the fields as UTC, convert, then subtract the resolved
// timezone offset (seconds east of UTC).
func (f fields) toUnix(offset int) int64 {
	t := time.Date(f.year, time.Month(f.month+1), f.day, f.hour, f.minute, f.second, 0, time.UTC)
	return t.Unix() - int64(offset)
}
