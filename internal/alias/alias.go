// Package alias holds the static format alias table from spec §3: a name
// or an alias-of-a-name resolves, in at most one hop, to a canonical
// strptime-style format string.
package alias

// entry is one row of the alias table: a name maps either directly to a
// format, or to another name (at most one hop away).
type entry struct {
	name   string
	alias  string // non-empty if this name is an alias for another entry
	format string // non-empty if this name resolves directly to a format
}

// table is the built-in, ordered alias table (spec §3).
var table = []entry{
	{name: "default", format: "%Y-%m-%d %H:%M:%S"},
	{name: "iso", format: "%Y-%m-%dT%H:%M:%S%z"},
	{name: "common", format: "%d/%b/%Y:%H:%M:%S %z"},
	{name: "syslog", format: "%b %d %H:%M:%S"},
	{name: "tskv", format: "unixtime=%s"},
	{name: "apache", alias: "common"},
	{name: "nginx", alias: "common"},
}

// custom holds names registered at runtime via --custom-formats (spec
// enrichment, see internal/customfmt), searched before the built-in table,
// so a registered name equal to a built-in name shadows the built-in entry.
var custom []entry

// Register adds a user-supplied name/format pair to the lookup, for
// --custom-formats (internal/customfmt). It does not support aliasing to
// another name — custom entries always resolve directly to a format.
func Register(name, format string) {
	custom = append(custom, entry{name: name, format: format})
}

// Resolve looks up name in the alias table and returns its canonical
// format string. ok is false if name is not a known alias/format name (in
// which case the caller should treat name itself as a literal format
// string, per spec §6's --format option).
func Resolve(name string) (format string, ok bool) {
	for _, e := range custom {
		if e.name == name {
			return e.format, true
		}
	}
	for _, e := range table {
		if e.name != name {
			continue
		}
		if e.format != "" {
			return e.format, true
		}
		// one-hop alias resolution
		for _, t := range table {
			if t.name == e.alias && t.format != "" {
				return t.format, true
			}
		}
		return "", false
	}
	return "", false
}

// Names returns the built-in and registered alias/format names in table
// order, for --help output.
func Names() []string {
	names := make([]string, 0, len(table)+len(custom))
	for _, e := range table {
		names = append(names, e.name)
	}
	for _, e := range custom {
		names = append(names, e.name)
	}
	return names
}
