package availability

import (
	"sort"
	"time"

	"slotwise/models"
)

// MergeBusy coalesces busy intervals into a minimal disjoint set, sorted by
// start. Overlapping and adjacent ranges collapse into one; the engine cares
// about the union of busy time, never about how many sources produced it.
func MergeBusy(busy []models.BusyInterval) []models.Interval {
	if len(busy) == 0 {
		return nil
	}

	ivs := make([]models.Interval, 0, len(busy))
	for _, b := range busy {
		ivs = append(ivs, b.Interval)
	}
	return mergeIntervals(ivs)
}

// mergeIntervals coalesces intervals into a minimal disjoint set sorted by
// start. Overlapping and adjacent ranges collapse into one.
func mergeIntervals(ivs []models.Interval) []models.Interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]models.Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []models.Interval{sorted[0]}
	for _, next := range sorted[1:] {
		current := &merged[len(merged)-1]
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// SubtractBusy removes the merged busy set from the sorted, disjoint
// working windows, returning the free sub-intervals. Both inputs are sorted
// by start, so a single two-cursor pass suffices.
func SubtractBusy(windows, busy []models.Interval) []models.Interval {
	var free []models.Interval
	j := 0
	for _, w := range windows {
		cursor := w.Start
		for j < len(busy) && !busy[j].End.After(cursor) {
			j++
		}
		for k := j; k < len(busy) && busy[k].Start.Before(w.End); k++ {
			if busy[k].Start.After(cursor) {
				free = append(free, models.Interval{Start: cursor, End: busy[k].Start})
			}
			if busy[k].End.After(cursor) {
				cursor = busy[k].End
			}
		}
		if cursor.Before(w.End) {
			free = append(free, models.Interval{Start: cursor, End: w.End})
		}
	}
	return free
}

// PadBusy expands every busy interval by the schedule's buffers so adjacent
// meetings are never scheduled back-to-back when buffers are configured.
func PadBusy(busy []models.BusyInterval, before, after time.Duration) []models.BusyInterval {
	if before <= 0 && after <= 0 {
		return busy
	}
	out := make([]models.BusyInterval, len(busy))
	for i, b := range busy {
		b.Interval = b.Interval.Pad(before, after)
		out[i] = b
	}
	return out
}
