package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/timetable/internal/model"
)

// CanonicalKey is the identity of a slot:
//
//	{code}::{start}::{end}::{Sun|Mon|...}
//
// Surrounding whitespace in the code is ignored and days are always listed
// in canonical order. Name and location are not part of the identity.
func CanonicalKey(code, start, end string, days model.DaySet) string {
	return fmt.Sprintf("%s::%s::%s::%s", strings.TrimSpace(code), start, end, days)
}

// Key returns the canonical key of a slot.
func Key(s model.Slot) string {
	return CanonicalKey(s.ClassCode, s.Start, s.End, s.Days)
}

// SortByKey returns a copy of slots ordered by canonical key.
func SortByKey(slots []model.Slot) []model.Slot {
	sorted := make([]model.Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Key(sorted[i]) < Key(sorted[j])
	})
	return sorted
}
