// Package localtz samples the process-wide local timezone offset exactly
// once, per spec §3 ("a single LOCAL_TZ_OFFSET ... sampled once at startup
// from the system's notion of local time"). It is injectable for tests
// rather than hard-wired to time.Now, per spec §9's design note.
package localtz

import (
	"sync"
	"time"
)

var (
	once   sync.Once
	offset int
)

// sample reads the current process local offset, seconds east of UTC.
func sample(now func() time.Time) int {
	_, off := now().Zone()
	return off
}

// Offset returns LOCAL_TZ_OFFSET, lazily sampled on first use and cached
// for the remainder of the process, matching the "sampled once at startup"
// invariant without forcing every caller through an explicit init step.
func Offset() int {
	once.Do(func() {
		offset = sample(time.Now)
	})
	return offset
}

// Override forces the cached offset, for tests that need a deterministic
// LOCAL_TZ_OFFSET regardless of the host's TZ.
func Override(seconds int) {
	once.Do(func() {}) // ensure once is consumed so Offset() never resamples
	offset = seconds
}
