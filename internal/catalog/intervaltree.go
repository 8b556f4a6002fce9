package catalog

import (
	"sort"

	"github.com/seqann/bedann/internal/gtf"
)

// intervalTree provides O(log n + k) overlap queries using a sorted-slice
// approach. Features are loaded once and never modified after build.
type intervalTree struct {
	intervals []interval
	maxEnd    []int64 // maxEnd[i] = max(end) for intervals[i:]
}

type interval struct {
	start   int64 // 0-based, inclusive
	end     int64 // 0-based, exclusive
	feature *gtf.Feature
}

// buildIntervalTree creates an interval tree from features, converting their
// 1-based inclusive coordinates to half-open for overlap tests.
func buildIntervalTree(features []*gtf.Feature) *intervalTree {
	if len(features) == 0 {
		return &intervalTree{}
	}

	intervals := make([]interval, len(features))
	for i, f := range features {
		intervals[i] = interval{start: f.Start - 1, end: f.End, feature: f}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	maxEnd := make([]int64, len(intervals))
	maxEnd[len(intervals)-1] = intervals[len(intervals)-1].end
	for i := len(intervals) - 2; i >= 0; i-- {
		maxEnd[i] = intervals[i].end
		if maxEnd[i+1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i+1]
		}
	}

	return &intervalTree{intervals: intervals, maxEnd: maxEnd}
}

// findOverlaps returns all features whose half-open span intersects
// [start, end), preserving ascending start order.
func (t *intervalTree) findOverlaps(start, end int64) []*gtf.Feature {
	if len(t.intervals) == 0 {
		return nil
	}

	// Binary search: candidates must have start < end, so only
	// intervals [0, hi) can overlap.
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].start >= end
	})

	var result []*gtf.Feature
	for i := 0; i < hi; i++ {
		// maxEnd[i] is the max end for intervals[i:]. If it does not
		// reach past the query start, nothing further can overlap.
		if t.maxEnd[i] <= start {
			break
		}
		if t.intervals[i].end > start {
			result = append(result, t.intervals[i].feature)
		}
	}

	return result
}
