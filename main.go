// Command timegrep, built from the module root for `go install
// github.com/abbat/timegrep@latest`; see cmd/timegrep for the same entrypoint.
package main

import (
	"os"

	_ "time/tzdata"

	"github.com/abbat/timegrep/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
