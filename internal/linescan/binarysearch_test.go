package linescan

import (
	"fmt"
	"strings"
	"testing"

	"github.com/abbat/timegrep/internal/tgcontext"
)

// buildLines joins timestamped lines (seconds since a fixed midnight) into
// one buffer, each formatted under "%Y-%m-%d %H:%M:%S".
func buildLines(seconds ...int) string {
	var b strings.Builder
	for _, s := range seconds {
		h, m, sec := s/3600, (s%3600)/60, s%60
		fmt.Fprintf(&b, "2020-01-01 %02d:%02d:%02d line\n", h, m, sec)
	}
	return b.String()
}

func TestBinarySearchFindsEarliestAtOrAfterTarget(t *testing.T) {
	compiled := mustCompile(t, "%Y-%m-%d %H:%M:%S")
	data := []byte(buildLines(10, 20, 30, 40, 50))

	targetLine := "2020-01-01 " + "00:00:30" + " line"
	target, _, err := tgcontext.Extract(compiled, []byte(targetLine))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	pos, outcome, err := BinarySearch(data, 0, target, compiled)
	if err != nil {
		t.Fatalf("BinarySearch: %v", err)
	}
	if outcome != Found {
		t.Fatalf("outcome = %v, want Found", outcome)
	}

	start, end, _ := LocateLine(data, pos)
	if string(data[start:end]) != targetLine {
		t.Fatalf("located %q, want %q", data[start:end], targetLine)
	}
}

func TestBinarySearchTargetBeyondEnd(t *testing.T) {
	compiled := mustCompile(t, "%Y-%m-%d %H:%M:%S")
	data := []byte(buildLines(10, 20, 30))

	_, outcome, err := BinarySearch(data, 0, 1<<40, compiled)
	if err != nil {
		t.Fatalf("BinarySearch: %v", err)
	}
	if outcome != NotFound {
		t.Fatalf("outcome = %v, want NotFound", outcome)
	}
}

func TestBinarySearchSkipsLineWithUndecodableTimezone(t *testing.T) {
	// A %Z line with a zone name decode.Timezone can't resolve sits between
	// two decodable lines; the probe that lands on it must come back
	// NotFound, not an error, and the search must still locate the target.
	compiled := mustCompile(t, "%Y-%m-%d %H:%M:%S %Z")
	data := []byte(
		"2020-01-01 00:00:10 UTC line\n" +
			"2020-01-01 00:00:20 CEST line\n" +
			"2020-01-01 00:00:30 UTC line\n",
	)

	targetLine := "2020-01-01 00:00:30 UTC line"
	target, found, err := tgcontext.Extract(compiled, []byte(targetLine))
	if err != nil || !found {
		t.Fatalf("Extract(%q) = %d, %v, %v", targetLine, target, found, err)
	}

	pos, outcome, err := BinarySearch(data, 0, target, compiled)
	if err != nil {
		t.Fatalf("BinarySearch: %v", err)
	}
	if outcome != Found {
		t.Fatalf("outcome = %v, want Found", outcome)
	}

	start, end, _ := LocateLine(data, pos)
	if string(data[start:end]) != targetLine {
		t.Fatalf("located %q, want %q", data[start:end], targetLine)
	}
}

func TestBinarySearchTargetBeforeStart(t *testing.T) {
	compiled := mustCompile(t, "%Y-%m-%d %H:%M:%S")
	data := []byte(buildLines(10, 20, 30))

	pos, outcome, err := BinarySearch(data, 0, 0, compiled)
	if err != nil {
		t.Fatalf("BinarySearch: %v", err)
	}
	if outcome != Found {
		t.Fatalf("outcome = %v, want Found", outcome)
	}
	if pos != 0 {
		t.Fatalf("pos = %d, want 0 (first line)", pos)
	}
}
