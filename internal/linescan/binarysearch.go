package linescan

import "github.com/abbat/timegrep/internal/strptimere"

// BinarySearch finds the position of the earliest line whose timestamp is
// >= target, within [l0, len(data)) (spec §4.6), grounded on the original
// tg_binary_search. The loop invariant shrinks U-L every iteration: mid is
// recomputed as the midpoint of [L, mid) after a NotFound probe, which is
// what guarantees termination even when large stretches of the buffer
// contain no parseable timestamp.
func BinarySearch(data []byte, l0 int, target int64, compiled *strptimere.Compiled) (position int, outcome Outcome, err error) {
	n := len(data)
	l := l0
	u := n
	mid := l + (u-l)/2

	result := NotFound

	for l != mid {
		start, end, ts, probeOutcome, probeErr := ForwardScan(data, u, mid, compiled)
		if probeErr != nil {
			return 0, NotFound, probeErr
		}

		switch probeOutcome {
		case Found:
			if ts < target {
				l = end
				mid = u
				if l != u {
					l++
				}
			} else {
				result = Found
				position = start
				u = start
				mid = u
			}
		case NotFound:
			u = mid
		default: // Unbounded
			return 0, result, nil
		}

		mid = l + (mid - l) / 2
	}

	return position, result, nil
}
