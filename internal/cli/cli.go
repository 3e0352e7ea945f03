// Package cli implements the timegrep command-line surface of spec §6, so
// that both the root module command and cmd/timegrep share one
// implementation instead of diverging.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abbat/timegrep/internal/alias"
	"github.com/abbat/timegrep/internal/autodetect"
	"github.com/abbat/timegrep/internal/customfmt"
	"github.com/abbat/timegrep/internal/emit"
	"github.com/abbat/timegrep/internal/mmapfile"
	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgcontext"
	"github.com/abbat/timegrep/internal/tgerr"
	"github.com/abbat/timegrep/regexFile"
	"github.com/abbat/timegrep/version"
)

// heuristicCascade is the fallback format list tried, in order, when a
// datetime command-line argument does not parse under the selected
// format (spec §6): the default format first, then six date-only shapes.
var heuristicCascade = []string{
	"%Y-%m-%d %H:%M:%S",
	"%Y-%m-%d",
	"%Y/%m/%d",
	"%Y.%m.%d",
	"%d-%m-%Y",
	"%d/%m/%Y",
	"%d.%m.%Y",
}

const autoFormat = "auto"

const sampleSize = 64 * 1024

// Run executes the timegrep CLI against os.Args[1:] and returns the
// process exit code of spec §6: 0 on at least one match (or --help /
// --version), 1 on no match anywhere, 2 on an unrecoverable error.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		formatFlag        string
		startFlag         string
		stopFlag          string
		secondsFlag       int
		minutesFlag       int
		hoursFlag         int
		versionFlag       bool
		helpFlag          bool
		customFormatsFlag string
	)

	fs := flag.NewFlagSet("timegrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&formatFlag, "format", "default", "name or literal strptime-style format")
	fs.StringVar(&formatFlag, "e", "default", "shorthand for --format")
	fs.StringVar(&startFlag, "start", "", "inclusive lower bound datetime")
	fs.StringVar(&startFlag, "f", "", "shorthand for --start")
	fs.StringVar(&stopFlag, "stop", "", "exclusive upper bound datetime")
	fs.StringVar(&stopFlag, "t", "", "shorthand for --stop")
	fs.IntVar(&secondsFlag, "seconds", 0, "seconds added to the default window offset")
	fs.IntVar(&secondsFlag, "s", 0, "shorthand for --seconds")
	fs.IntVar(&minutesFlag, "minutes", 0, "minutes added to the default window offset")
	fs.IntVar(&minutesFlag, "m", 0, "shorthand for --minutes")
	fs.IntVar(&hoursFlag, "hours", 0, "hours added to the default window offset")
	fs.IntVar(&hoursFlag, "h", 0, "shorthand for --hours")
	fs.BoolVar(&versionFlag, "version", false, "print the version and exit")
	fs.BoolVar(&versionFlag, "v", false, "shorthand for --version")
	fs.BoolVar(&helpFlag, "help", false, "print usage and exit")
	fs.BoolVar(&helpFlag, "?", false, "shorthand for --help")
	fs.StringVar(&customFormatsFlag, "custom-formats", "", "path to a YAML file of additional named formats")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if versionFlag {
		version.PrintVersion(stdout)
		return 0
	}
	if helpFlag {
		printUsage(stdout)
		return 0
	}

	if customFormatsFlag != "" {
		if _, err := customfmt.Load(customFormatsFlag); err != nil {
			reportError(stderr, err)
			return 2
		}
	}

	if secondsFlag < 0 || minutesFlag < 0 || hoursFlag < 0 {
		reportError(stderr, tgerr.New(tgerr.BadArg, "--seconds/--minutes/--hours must be non-negative"))
		return 2
	}
	offset := int64(secondsFlag) + int64(minutesFlag)*60 + int64(hoursFlag)*3600

	format := formatFlag
	if resolved, ok := alias.Resolve(formatFlag); ok {
		format = resolved
	}

	var stop int64
	if stopFlag != "" {
		v, err := parseDatetimeArg(stopFlag, format)
		if err != nil {
			reportError(stderr, err)
			return 2
		}
		stop = v
	} else {
		stop = time.Now().Unix()
	}

	var start int64
	if startFlag != "" {
		v, err := parseDatetimeArg(startFlag, format)
		if err != nil {
			reportError(stderr, err)
			return 2
		}
		start = v
	} else {
		start = stop - offset
	}

	files := fs.Args()

	matched := false

	if len(files) == 0 {
		ok, err := runStream(stdin, stdout, format, start, stop)
		if err != nil {
			reportError(stderr, err)
			return 2
		}
		matched = ok
	} else {
		for _, path := range files {
			ok, err := runFile(stdout, path, format, start, stop)
			if err != nil {
				reportError(stderr, err)
				return 2
			}
			matched = matched || ok
		}
	}

	if !matched {
		return 1
	}
	return 0
}

func runFile(stdout io.Writer, path, format string, start, stop int64) (bool, error) {
	mf, ok, err := mmapfile.Open(path)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	defer mf.Close()

	compiled, err := resolveCompiled(format, mf.Bytes())
	if err != nil {
		return false, err
	}

	w := bufio.NewWriterSize(stdout, 512*1024)
	matched, err := emit.File(w, mf, compiled, start, stop)
	if err != nil {
		return matched, err
	}
	if flushErr := w.Flush(); flushErr != nil {
		return matched, tgerr.Wrap(tgerr.IoError, flushErr, "flushing output")
	}
	return matched, nil
}

func runStream(stdin io.Reader, stdout io.Writer, format string, start, stop int64) (bool, error) {
	decompressed, err := regexFile.Wrap(stdin)
	if err != nil {
		return false, tgerr.Wrap(tgerr.IoError, err, "detecting stream compression")
	}
	reader := bufio.NewReaderSize(decompressed, sampleSize)

	sample, _ := reader.Peek(sampleSize)
	compiled, err := resolveCompiled(format, sample)
	if err != nil {
		return false, err
	}

	w := bufio.NewWriterSize(stdout, 512*1024)
	matched, err := emit.Stream(w, reader, compiled, start, stop)
	if err != nil {
		return matched, err
	}
	if flushErr := w.Flush(); flushErr != nil {
		return matched, tgerr.Wrap(tgerr.IoError, flushErr, "flushing output")
	}
	return matched, nil
}

func resolveCompiled(format string, sample []byte) (*strptimere.Compiled, error) {
	if format != autoFormat {
		return strptimere.Compile(format)
	}
	detected, ok := autodetect.Detect(sample)
	if !ok {
		detected, _ = alias.Resolve("default")
	}
	return strptimere.Compile(detected)
}

// parseDatetimeArg parses s first under format, then under the heuristic
// cascade of spec §6, each candidate interpreted in local time.
func parseDatetimeArg(s, format string) (int64, error) {
	candidates := make([]string, 0, len(heuristicCascade)+1)
	candidates = append(candidates, format)
	candidates = append(candidates, heuristicCascade...)

	for _, f := range candidates {
		compiled, err := strptimere.Compile(f)
		if err != nil {
			continue
		}
		ts, found, err := tgcontext.Extract(compiled, []byte(s))
		if err != nil || !found {
			continue
		}
		return ts, nil
	}
	return 0, tgerr.New(tgerr.BadArg, "could not parse datetime argument: "+s)
}

func reportError(stderr io.Writer, err error) {
	fmt.Fprintf(stderr, "ERROR: %s\n", err)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: timegrep [options] [files...]\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  --format, -e      name or literal format (default: default)\n")
	fmt.Fprintf(w, "  --start, -f       inclusive lower bound datetime\n")
	fmt.Fprintf(w, "  --stop, -t        exclusive upper bound datetime\n")
	fmt.Fprintf(w, "  --seconds, -s     seconds added to the window offset\n")
	fmt.Fprintf(w, "  --minutes, -m     minutes added to the window offset\n")
	fmt.Fprintf(w, "  --hours, -h       hours added to the window offset\n")
	fmt.Fprintf(w, "  --custom-formats  YAML file of additional named formats\n")
	fmt.Fprintf(w, "  --version, -v     print the version and exit\n")
	fmt.Fprintf(w, "  --help, -?        print this message and exit\n\n")
	fmt.Fprintf(w, "Built-in formats: %v\n", alias.Names())
}
