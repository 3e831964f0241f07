package schedule

import (
	"strings"

	"github.com/Veraticus/timetable/internal/model"
	"github.com/Veraticus/timetable/internal/normalize"
)

// NormalizeItem cleans one extracted row. The result may be incomplete
// (see model.Slot.Complete); Merge drops incomplete slots.
func NormalizeItem(item model.RawSlotItem) model.Slot {
	slot := model.Slot{
		ClassCode: strings.TrimSpace(normalize.DigitsToASCII(item.ClassCode)),
		ClassName: strings.TrimSpace(item.ClassName),
		Location:  strings.TrimSpace(item.Location),
		Days:      normalize.Days(item.Days),
	}
	slot.Start, slot.End = itemTimes(item)
	return slot
}

// itemTimes prefers an explicit start/end pair and otherwise falls back to
// the first combined span it can find.
func itemTimes(item model.RawSlotItem) (start, end string) {
	rawStart := strings.TrimSpace(item.StartTime)
	rawEnd := strings.TrimSpace(item.EndTime)
	if rawStart != "" && rawEnd != "" {
		start, _ = normalize.ToHHMM(rawStart)
		end, _ = normalize.ToHHMM(rawEnd)
		return start, end
	}

	for _, span := range []string{item.Time, item.TimeSpan, rawStart} {
		if strings.TrimSpace(span) != "" {
			return normalize.NormalizeTimeSpan(span)
		}
	}
	return "", ""
}

// NormalizeItems cleans every row and merges repeated rows into slots.
func NormalizeItems(items []model.RawSlotItem) []model.Slot {
	slots := make([]model.Slot, 0, len(items))
	for _, item := range items {
		slots = append(slots, NormalizeItem(item))
	}
	return Merge(slots)
}
