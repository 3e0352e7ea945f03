// Command timegrep extracts, from one or more newline-delimited text
// files (or standard input), the contiguous range of lines whose embedded
// timestamps fall within a half-open window [start, stop).
package main

import (
	"os"

	_ "time/tzdata"

	"github.com/abbat/timegrep/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
