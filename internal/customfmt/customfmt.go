// Package customfmt loads the optional --custom-formats YAML file and
// registers its entries into internal/alias, letting a deployment add its
// own named formats alongside the built-in alias table (spec §3
// supplemented by a Go-native configuration layer; see SPEC_FULL.md's
// ambient stack section).
package customfmt

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abbat/timegrep/internal/alias"
	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgerr"
)

// document is the top-level shape of a --custom-formats file.
type document struct {
	Formats []entry `yaml:"formats"`
}

type entry struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
}

// Load reads path, validates each entry compiles under strptimere, and
// registers it into internal/alias. Returns the number of formats loaded.
func Load(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, tgerr.Wrap(tgerr.IoError, err, "reading custom formats file "+path)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return 0, tgerr.Wrap(tgerr.BadFormat, err, "parsing custom formats file "+path)
	}

	for _, e := range doc.Formats {
		if e.Name == "" {
			return 0, tgerr.New(tgerr.BadFormat, "custom format entry missing name")
		}
		if e.Format == "" {
			return 0, tgerr.New(tgerr.BadFormat, "custom format "+e.Name+" missing format string")
		}
		if _, err := strptimere.Compile(e.Format); err != nil {
			return 0, tgerr.Wrap(tgerr.BadFormat, err, "custom format "+e.Name+" does not compile")
		}
		alias.Register(e.Name, e.Format)
	}

	return len(doc.Formats), nil
}
