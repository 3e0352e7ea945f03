package emit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/abbat/timegrep/internal/mmapfile"
	"github.com/abbat/timegrep/internal/strptimere"
	"github.com/abbat/timegrep/internal/tgcontext"
)

func compileFor(t *testing.T, format string) *strptimere.Compiled {
	t.Helper()
	c, err := strptimere.Compile(format)
	if err != nil {
		t.Fatalf("Compile(%q): %v", format, err)
	}
	return c
}

func tsOf(t *testing.T, c *strptimere.Compiled, line string) int64 {
	t.Helper()
	ts, found, err := tgcontext.Extract(c, []byte(line))
	if err != nil || !found {
		t.Fatalf("Extract(%q) = %v, %v, %v", line, ts, found, err)
	}
	return ts
}

func openMapped(t *testing.T, content string) *mmapfile.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, ok, err := mmapfile.Open(path)
	if err != nil || !ok {
		t.Fatalf("mmapfile.Open: ok=%v, err=%v", ok, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFileEmitsWindow(t *testing.T) {
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	lines := []string{
		"2020-01-01 00:00:10 a",
		"2020-01-01 00:00:20 b",
		"2020-01-01 00:00:30 c",
		"2020-01-01 00:00:40 d",
	}
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	mf := openMapped(t, content)

	start := tsOf(t, c, lines[1])
	stop := tsOf(t, c, lines[3])

	var out bytes.Buffer
	matched, err := File(&out, mf, c, start, stop)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if !matched {
		t.Fatal("expected matched=true")
	}
	want := lines[1] + "\n" + lines[2] + "\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestFileStartBeyondAllTimestamps(t *testing.T) {
	// When no line's timestamp is >= start, the lower-bound binary search
	// comes back NotFound and nothing is emitted.
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	content := "2020-01-01 00:00:10 a\n2020-01-01 00:00:20 b\n"
	mf := openMapped(t, content)

	start := tsOf(t, c, "2020-01-01 00:00:20 b") + 1000
	stop := start + 1

	var out bytes.Buffer
	matched, err := File(&out, mf, c, start, stop)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if matched {
		t.Fatal("expected matched=false")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestFileWindowReachesEndOfFile(t *testing.T) {
	// When the upper binary search comes back NotFound, hi is pinned to
	// len(data) and a corrective trailing "\n" is always appended
	// (matching the original's "ubound == ctx->size" rule) -- even when
	// the mapped file itself already ends in a newline.
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	lines := []string{
		"2020-01-01 00:00:10 a",
		"2020-01-01 00:00:20 b",
	}
	content := lines[0] + "\n" + lines[1] + "\n"
	mf := openMapped(t, content)

	start := tsOf(t, c, lines[1])
	stop := start + 10000

	var out bytes.Buffer
	matched, err := File(&out, mf, c, start, stop)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if !matched {
		t.Fatal("expected matched=true")
	}
	want := lines[1] + "\n\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
