// Package autodetect implements the `--format auto` CLI option: probe a
// sample of input bytes against timegrinder's built-in processor set and
// translate whichever one matches into an equivalent strptime-style
// format string for the strptimere compiler.
//
// timegrinder's processors recognize shapes using Go reference-time
// layouts (spec-external, teacher-native); this package is the bridge
// between that recognition step and this tool's strptime-based core,
// grounded on timegrinder.New/GetProcessor/Processor.Match.
package autodetect

import (
	"github.com/abbat/timegrep/timegrinder"
)

// candidates lists, in priority order, the timegrinder processor names
// this tool knows how to translate into a strptime format string. Order
// matters the same way it does in timegrinder's own New(): more specific
// shapes are tried before looser ones that could also match.
var candidates = []struct {
	name   string
	format string
}{
	{string(timegrinder.RFC3339), "%Y-%m-%dT%H:%M:%S%z"},
	{string(timegrinder.RFC3339Nano), "%Y-%m-%dT%H:%M:%S%z"},
	{string(timegrinder.RFC1123Z), "%d %b %Y %H:%M:%S %z"},
	{string(timegrinder.RFC1123), "%d %b %Y %H:%M:%S %Z"},
	{string(timegrinder.RFC850), "%d-%b-%y %H:%M:%S %Z"},
	{string(timegrinder.RFC822Z), "%d %b %y %H:%M %z"},
	{string(timegrinder.RFC822), "%d %b %y %H:%M %Z"},
	{string(timegrinder.Ruby), "%b %e %H:%M:%S %z %Y"},
	{string(timegrinder.Unix), "%b %e %H:%M:%S %Z %Y"},
	{string(timegrinder.AnsiC), "%b %e %H:%M:%S %Y"},
	{string(timegrinder.Apache), "%d/%b/%Y:%H:%M:%S %z"},
	{string(timegrinder.ApacheNoTz), "%d/%b/%Y:%H:%M:%S"},
	{string(timegrinder.NGINX), "%Y/%m/%d %H:%M:%S"},
	{string(timegrinder.SyslogVariant), "%b %d %Y %H:%M:%S"},
	{string(timegrinder.Syslog), "%b %d %H:%M:%S"},
	{string(timegrinder.DPKG), "%Y-%m-%d %H:%M:%S"},
	{string(timegrinder.UnpaddedDateTime), "%Y-%m-%d %H:%M:%S"},
	{string(timegrinder.Bind), "%d-%b-%Y %H:%M:%S"},
	{string(timegrinder.DirectAdmin), "%Y:%m:%d-%H:%M:%S"},
	{string(timegrinder.Gravwell), "%m-%d-%Y %H:%M:%S"},
	{string(timegrinder.UnixSeconds), "%s"},
}

// Detect probes sample against the candidate processors in order and
// returns the strptime format string of the first one whose Match
// succeeds. ok is false if none of the translatable processors match
// (the sample may still hold a timestamp in one of timegrinder's other
// formats; this tool simply has no strptime equivalent for it).
func Detect(sample []byte) (format string, ok bool) {
	tg, err := timegrinder.New(timegrinder.Config{})
	if err != nil {
		return "", false
	}
	for _, c := range candidates {
		proc, found := tg.GetProcessor(c.name)
		if !found {
			continue
		}
		if _, _, matched := proc.Match(sample); matched {
			return c.format, true
		}
	}
	return "", false
}
