package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/timetable/internal/model"
)

func TestCanonicalKey(t *testing.T) {
	days := model.NewDaySet(model.Tuesday, model.Sunday)

	assert.Equal(t, "CS101::08:00::09:00::Sun|Tue", CanonicalKey("CS101", "08:00", "09:00", days))
	assert.Equal(t, CanonicalKey("CS101", "08:00", "09:00", days), CanonicalKey(" CS101 ", "08:00", "09:00", days))
	assert.Equal(t,
		CanonicalKey("CS101", "08:00", "09:00", model.NewDaySet(model.Sunday, model.Tuesday)),
		CanonicalKey("CS101", "08:00", "09:00", model.NewDaySet(model.Tuesday, model.Sunday, model.Tuesday)),
	)
	assert.NotEqual(t, CanonicalKey("CS101", "08:00", "09:00", days), CanonicalKey("CS101", "08:00", "09:50", days))
}

func TestRecordKey(t *testing.T) {
	tests := []struct {
		name   string
		record model.ClassRecord
	}{
		{
			name: "list days and seconds",
			record: model.ClassRecord{
				ClassCode:  "CS101",
				StartTime:  "08:00:00",
				EndTime:    "09:00:00",
				DaysOfWeek: []string{"Tue", "Sun"},
			},
		},
		{
			name: "curly brace days",
			record: model.ClassRecord{
				ClassCode:  " CS101",
				StartTime:  "08:00",
				EndTime:    "09:00",
				DaysOfWeek: []string{"{Sun,Tue}"},
			},
		},
		{
			name: "arabic days",
			record: model.ClassRecord{
				ClassCode:  "CS101",
				StartTime:  "08:00",
				EndTime:    "09:00",
				DaysOfWeek: []string{"الأحد", "الثلاثاء"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "CS101::08:00::09:00::Sun|Tue", RecordKey(tt.record))
		})
	}
}

func TestReconcile_SkipsStoredDuplicates(t *testing.T) {
	merged := Merge([]model.Slot{
		slot("CS101", "", "", "08:00", "09:00", model.Sunday),
		slot("CS101", "Intro CS", "", "08:00", "09:00", model.Tuesday),
	})
	existing := map[string]struct{}{
		CanonicalKey("CS101", "08:00", "09:00", model.NewDaySet(model.Sunday, model.Tuesday)): {},
	}

	result := Reconcile(merged, existing)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.ToInsert)
}

func TestReconcile_InsertsNewAndDedupsWithinBatch(t *testing.T) {
	slots := []model.Slot{
		slot("CS101", "Intro", "", "08:00", "09:00", model.Sunday),
		slot(" CS101", "Intro again", "", "08:00", "09:00", model.Sunday),
		slot("CS102", "", "", "08:00", "09:00", model.Sunday),
	}
	existing := map[string]struct{}{}

	result := Reconcile(slots, existing)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.ToInsert, 2)
	assert.Equal(t, "Intro", result.ToInsert[0].ClassName)
	assert.Equal(t, "CS102", result.ToInsert[1].ClassCode)
	assert.Empty(t, existing, "caller's key set must not be modified")
}

func TestReconcile_DifferentDaySetIsNew(t *testing.T) {
	existing := ExistingKeys([]model.ClassRecord{{
		ClassCode:  "CS101",
		StartTime:  "08:00:00",
		EndTime:    "09:00:00",
		DaysOfWeek: []string{"Sun"},
	}})

	result := Reconcile([]model.Slot{slot("CS101", "", "", "08:00", "09:00", model.Sunday, model.Tuesday)}, existing)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
}

func TestPlan(t *testing.T) {
	items := []model.RawSlotItem{
		{ClassCode: "CS101", Days: model.DayList("الأحد"), StartTime: "8.0", EndTime: "9.0"},
		{ClassCode: "CS101", ClassName: "Intro CS", Days: model.DayList("الثلاثاء"), Time: "8.0-9.0"},
		{ClassCode: "MATH1", Days: model.DayText("Mon"), Time: "10-11"},
		{ClassCode: "MATH1", Days: model.DayText(""), Time: "12-13"},
	}
	existing := []model.ClassRecord{{
		ClassCode:  "MATH1",
		ClassName:  "",
		StartTime:  "10:00:00",
		EndTime:    "11:00:00",
		DaysOfWeek: []string{"{Mon}"},
	}}

	result := Plan(items, existing)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.ToInsert, 1)
	assert.Equal(t, "CS101::08:00::09:00::Sun|Tue", Key(result.ToInsert[0]))
	assert.Equal(t, "Intro CS", result.ToInsert[0].ClassName)

	record := result.ToInsert[0].Record()
	assert.Equal(t, []string{"Sun", "Tue"}, record.DaysOfWeek)
	assert.Equal(t, "08:00", record.StartTime)
	assert.True(t, record.Active)
}

func TestSortByKey(t *testing.T) {
	slots := []model.Slot{
		slot("B", "", "", "08:00", "09:00", model.Sunday),
		slot("A", "", "", "10:00", "11:00", model.Sunday),
		slot("A", "", "", "08:00", "09:00", model.Monday),
	}

	sorted := SortByKey(slots)
	assert.Equal(t, "A::08:00::09:00::Mon", Key(sorted[0]))
	assert.Equal(t, "A::10:00::11:00::Sun", Key(sorted[1]))
	assert.Equal(t, "B::08:00::09:00::Sun", Key(sorted[2]))
	assert.Equal(t, "B", slots[0].ClassCode)
}
