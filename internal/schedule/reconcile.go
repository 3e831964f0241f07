package schedule

import (
	"strings"

	"github.com/Veraticus/timetable/internal/model"
	"github.com/Veraticus/timetable/internal/normalize"
)

// storedTimeWidth is the length of "HH:MM"; stored values may carry seconds.
const storedTimeWidth = 5

// RecordKey computes the canonical key of a stored class. Times are cut to
// "HH:MM" and days are normalized, whether the store returned a list or a
// single "{Sun,Tue}" string.
func RecordKey(rec model.ClassRecord) string {
	var days model.DaySet
	for _, d := range rec.DaysOfWeek {
		days = days.Union(normalize.ParseDays(d))
	}
	return CanonicalKey(rec.ClassCode, truncate(rec.StartTime), truncate(rec.EndTime), days)
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > storedTimeWidth {
		return s[:storedTimeWidth]
	}
	return s
}

// ExistingKeys builds the key set of stored classes.
func ExistingKeys(records []model.ClassRecord) map[string]struct{} {
	keys := make(map[string]struct{}, len(records))
	for _, rec := range records {
		keys[RecordKey(rec)] = struct{}{}
	}
	return keys
}

// Reconcile splits merged slots into inserts and duplicates. A slot whose
// key is already stored is skipped as is: its name and location are not
// used to update the stored record. Slots that collide within the batch are
// inserted once. The existing set is not modified.
func Reconcile(slots []model.Slot, existing map[string]struct{}) model.ReconcileResult {
	seen := make(map[string]struct{}, len(existing)+len(slots))
	for k := range existing {
		seen[k] = struct{}{}
	}

	result := model.ReconcileResult{ToInsert: make([]model.Slot, 0, len(slots))}
	for _, s := range slots {
		key := Key(s)
		if _, dup := seen[key]; dup {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}
		result.ToInsert = append(result.ToInsert, s)
		result.Inserted++
	}
	return result
}

// Plan runs the whole pipeline: normalize and merge the extracted rows, then
// reconcile them against the stored classes.
func Plan(items []model.RawSlotItem, existing []model.ClassRecord) model.ReconcileResult {
	return Reconcile(NormalizeItems(items), ExistingKeys(existing))
}
