// Package interval provides pure arithmetic over time intervals:
// overlap tests, coalescing of overlapping or touching intervals, and
// subtraction of a busy set from a bounding window. All functions are
// side-effect free and tolerate unsorted or duplicated input.
package interval

import (
	"sort"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// Overlaps reports whether a and b share any time.
// Touching endpoints (a.End == b.Start) do not overlap.
func Overlaps(a, b model.TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Merge coalesces overlapping or touching intervals into a sorted,
// disjoint sequence. The input slice is not modified.
func Merge(list []model.TimeInterval) []model.TimeInterval {
	if len(list) == 0 {
		return nil
	}

	sorted := make([]model.TimeInterval, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []model.TimeInterval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !cur.Start.After(last.End) { // overlap or adjacency
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// Subtract removes the union of busy from window and returns the
// remaining gaps ordered by start. Zero-length gaps are dropped; a busy
// interval covering the whole window yields an empty result.
func Subtract(window model.TimeInterval, busy []model.TimeInterval) []model.TimeInterval {
	var free []model.TimeInterval
	cursor := window.Start

	for _, b := range Merge(busy) {
		if !b.End.After(window.Start) || !b.Start.Before(window.End) {
			continue // entirely outside the window
		}
		if b.Start.After(cursor) {
			free = append(free, model.TimeInterval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	if cursor.Before(window.End) {
		free = append(free, model.TimeInterval{Start: cursor, End: window.End})
	}
	return free
}
