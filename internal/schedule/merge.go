package schedule

import "github.com/Veraticus/timetable/internal/model"

// groupKey identifies rows that describe the same class at the same time.
// Days are deliberately absent: merging exists to union them.
type groupKey struct {
	code  string
	start string
	end   string
}

// Merge collapses rows sharing class code, start and end into one slot whose
// days are the union of the rows' days. Name and location are backfilled
// from the first row that has them; later values never overwrite.
//
// Incomplete rows are skipped. Groups come out in first-seen order.
func Merge(items []model.Slot) []model.Slot {
	index := make(map[groupKey]int, len(items))
	merged := make([]model.Slot, 0, len(items))

	for _, it := range items {
		if !it.Complete() {
			continue
		}

		key := groupKey{code: it.ClassCode, start: it.Start, end: it.End}
		i, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, it)
			continue
		}

		acc := &merged[i]
		acc.Days = acc.Days.Union(it.Days)
		if acc.ClassName == "" && it.ClassName != "" {
			acc.ClassName = it.ClassName
		}
		if acc.Location == "" && it.Location != "" {
			acc.Location = it.Location
		}
	}

	return merged
}
