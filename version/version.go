// Package version holds the build version reported by --version.
package version

import (
	"fmt"
	"io"
	"time"
)

const (
	MajorVersion int = 1
	MinorVersion int = 0
	PointVersion int = 0
)

var (
	BuildDate time.Time = time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
)

// Name is the program name reported alongside the version triple.
const Name = "timegrep"

func PrintVersion(wtr io.Writer) {
	fmt.Fprintf(wtr, "%s %d.%d.%d\n", Name, MajorVersion, MinorVersion, PointVersion)
}

// String renders "timegrep <version>" as required by the --version CLI output.
func String() string {
	return fmt.Sprintf("%s %d.%d.%d", Name, MajorVersion, MinorVersion, PointVersion)
}
