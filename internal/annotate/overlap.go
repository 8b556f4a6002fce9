// Package annotate implements interval annotation against a transcript
// feature catalog: candidate building, coverage, scoring, and ambiguity
// resolution.
package annotate

import "math"

// OverlapLen returns the overlap length of the half-open ranges
// [aStart, aEnd) and [bStart, bEnd). Touching ranges overlap by zero.
func OverlapLen(aStart, aEnd, bStart, bEnd int64) int64 {
	left := aStart
	if bStart > left {
		left = bStart
	}
	right := aEnd
	if bEnd < right {
		right = bEnd
	}
	if right <= left {
		return 0
	}
	return right - left
}

// Pct returns 100 * overlap / total as a percentage in [0, 100].
// A non-positive total yields exactly 0 rather than dividing by zero.
func Pct(overlap, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return 100.0 * float64(overlap) / float64(total)
}

// round3 rounds to 3 decimal places for output. Scores and percentages are
// compared at full precision internally.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
