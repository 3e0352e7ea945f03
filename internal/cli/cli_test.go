package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--version"}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "timegrep") {
		t.Fatalf("output = %q, expected it to mention timegrep", out.String())
	}
}

func TestRunHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--help"}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "Usage") {
		t.Fatalf("output = %q, expected usage text", out.String())
	}
}

func TestRunStreamMatch(t *testing.T) {
	input := "2020-01-01 00:00:10 a\n2020-01-01 00:00:20 b\n2020-01-01 00:00:30 c\n"
	var out, errOut bytes.Buffer
	code := Run(
		[]string{"--format", "default", "--start", "2020-01-01 00:00:15", "--stop", "2020-01-01 00:00:25"},
		strings.NewReader(input), &out, &errOut,
	)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut.String())
	}
	want := "2020-01-01 00:00:20 b\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestRunStreamNoMatchExitsOne(t *testing.T) {
	input := "2020-01-01 00:00:10 a\n"
	var out, errOut bytes.Buffer
	code := Run(
		[]string{"--format", "default", "--start", "2030-01-01 00:00:00", "--stop", "2030-01-01 00:00:01"},
		strings.NewReader(input), &out, &errOut,
	)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunFileMatch(t *testing.T) {
	input := "2020-01-01 00:00:10 a\n2020-01-01 00:00:20 b\n2020-01-01 00:00:30 c\n"
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errOut bytes.Buffer
	code := Run(
		[]string{"--format", "default", "--start", "2020-01-01 00:00:15", "--stop", "2020-01-01 00:00:25", path},
		strings.NewReader(""), &out, &errOut,
	)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut.String())
	}
	want := "2020-01-01 00:00:20 b\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestRunRejectsNegativeOffsets(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--seconds", "-1"}, strings.NewReader(""), &out, &errOut)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestParseDatetimeArgHeuristicCascade(t *testing.T) {
	ts, err := parseDatetimeArg("2020/01/02", "%Y-%m-%d %H:%M:%S")
	if err != nil {
		t.Fatalf("parseDatetimeArg: %v", err)
	}
	want, err := parseDatetimeArg("2020-01-02", "%Y-%m-%d %H:%M:%S")
	if err != nil {
		t.Fatalf("parseDatetimeArg: %v", err)
	}
	if ts != want {
		t.Fatalf("ts = %d, want %d (same calendar day via the heuristic cascade)", ts, want)
	}
}

func TestParseDatetimeArgRejectsGarbage(t *testing.T) {
	if _, err := parseDatetimeArg("not a date at all", "%Y-%m-%d %H:%M:%S"); err == nil {
		t.Fatal("expected an error for an unparseable datetime argument")
	}
}
