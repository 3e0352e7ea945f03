package localtz

import (
	"testing"
	"time"
)

func TestSampleReadsGivenClock(t *testing.T) {
	loc := time.FixedZone("TEST", 2*3600)
	fixed := time.Date(2020, time.January, 1, 0, 0, 0, 0, loc)

	got := sample(func() time.Time { return fixed })
	if got != 2*3600 {
		t.Fatalf("sample = %d, want %d", got, 2*3600)
	}
}

func TestOverrideSetsTheCachedOffset(t *testing.T) {
	Override(1800)
	if got := Offset(); got != 1800 {
		t.Fatalf("Offset() = %d, want 1800", got)
	}
	// Offset() must not resample from time.Now once once has been
	// consumed by Override, even though Override itself can still be
	// called again to set a new value directly.
	Override(-1800)
	if got := Offset(); got != -1800 {
		t.Fatalf("Offset() after second Override = %d, want -1800", got)
	}
}
