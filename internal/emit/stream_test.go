package emit

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamEmitsWindow(t *testing.T) {
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	lines := []string{
		"2020-01-01 00:00:10 a",
		"2020-01-01 00:00:20 b",
		"2020-01-01 00:00:30 c",
		"2020-01-01 00:00:40 d",
	}
	input := strings.Join(lines, "\n") + "\n"

	start := tsOf(t, c, lines[1])
	stop := tsOf(t, c, lines[3])

	var out bytes.Buffer
	matched, err := Stream(&out, strings.NewReader(input), c, start, stop)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if !matched {
		t.Fatal("expected matched=true")
	}
	want := lines[1] + "\n" + lines[2] + "\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestStreamNoMatch(t *testing.T) {
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	input := "2020-01-01 00:00:10 a\n2020-01-01 00:00:20 b\n"

	start := tsOf(t, c, "2020-01-01 00:00:20 b") + 1000
	stop := start + 1

	var out bytes.Buffer
	matched, err := Stream(&out, strings.NewReader(input), c, start, stop)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if matched {
		t.Fatal("expected matched=false")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestStreamUnparseableLinesFollowStreamingState(t *testing.T) {
	// An unparseable line before the window is discarded; one inside the
	// window is emitted along with its neighbours.
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	input := "garbage line with no timestamp\n" +
		"2020-01-01 00:00:10 a\n" +
		"another garbage line\n" +
		"2020-01-01 00:00:20 b\n"

	start := tsOf(t, c, "2020-01-01 00:00:10 a")
	stop := tsOf(t, c, "2020-01-01 00:00:20 b") + 1

	var out bytes.Buffer
	matched, err := Stream(&out, strings.NewReader(input), c, start, stop)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if !matched {
		t.Fatal("expected matched=true")
	}
	want := "2020-01-01 00:00:10 a\nanother garbage line\n2020-01-01 00:00:20 b\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestStreamHandlesInputLargerThanOneChunk(t *testing.T) {
	c := compileFor(t, "%Y-%m-%d %H:%M:%S")
	var b strings.Builder
	for i := 0; i < 20000; i++ {
		b.WriteString("padding line with no timestamp to force buffer growth\n")
	}
	b.WriteString("2020-01-01 00:00:10 a\n")
	b.WriteString("2020-01-01 00:00:20 b\n")
	input := b.String()

	start := tsOf(t, c, "2020-01-01 00:00:10 a")
	stop := tsOf(t, c, "2020-01-01 00:00:20 b")

	var out bytes.Buffer
	matched, err := Stream(&out, strings.NewReader(input), c, start, stop)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if !matched {
		t.Fatal("expected matched=true")
	}
	want := "2020-01-01 00:00:10 a\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
