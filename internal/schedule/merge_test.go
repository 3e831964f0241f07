package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/timetable/internal/model"
)

func slot(code, name, loc, start, end string, days ...model.Weekday) model.Slot {
	return model.Slot{
		ClassCode: code,
		ClassName: name,
		Location:  loc,
		Start:     start,
		End:       end,
		Days:      model.NewDaySet(days...),
	}
}

func TestMerge_UnionsDaysAndKeepsFirstName(t *testing.T) {
	items := []model.Slot{
		slot("CS101", "", "", "08:00", "09:00", model.Sunday),
		slot("CS101", "Intro CS", "", "08:00", "09:00", model.Tuesday),
	}

	merged := Merge(items)
	require.Len(t, merged, 1)
	assert.Equal(t, []string{"Sun", "Tue"}, merged[0].Days.Codes())
	assert.Equal(t, "Intro CS", merged[0].ClassName)
}

func TestMerge_FirstNonEmptyWins(t *testing.T) {
	items := []model.Slot{
		slot("CS101", "", "", "08:00", "09:00", model.Thursday),
		slot("CS101", "Intro CS", "Room 1", "08:00", "09:00", model.Monday),
		slot("CS101", "Other Name", "Room 2", "08:00", "09:00", model.Sunday),
	}

	merged := Merge(items)
	require.Len(t, merged, 1)
	assert.Equal(t, "Intro CS", merged[0].ClassName)
	assert.Equal(t, "Room 1", merged[0].Location)
	assert.Equal(t, []string{"Sun", "Mon", "Thu"}, merged[0].Days.Codes())
}

func TestMerge_DifferentTimesStaySeparate(t *testing.T) {
	items := []model.Slot{
		slot("CS101", "Intro", "", "08:00", "09:00", model.Sunday),
		slot("CS101", "Intro", "", "10:00", "11:00", model.Sunday),
		slot("CS102", "Intro", "", "08:00", "09:00", model.Sunday),
	}

	merged := Merge(items)
	require.Len(t, merged, 3)
	assert.Equal(t, "08:00", merged[0].Start)
	assert.Equal(t, "10:00", merged[1].Start)
	assert.Equal(t, "CS102", merged[2].ClassCode)
}

func TestMerge_IncompleteRowsVanish(t *testing.T) {
	items := []model.Slot{
		slot("", "No code", "", "08:00", "09:00", model.Sunday),
		slot("CS1", "No days", "", "08:00", "09:00"),
		slot("CS2", "No start", "", "", "09:00", model.Monday),
		slot("CS3", "No end", "", "08:00", "", model.Monday),
		slot("CS4", "Ok", "", "08:00", "09:00", model.Monday),
	}

	merged := Merge(items)
	require.Len(t, merged, 1)
	assert.Equal(t, "CS4", merged[0].ClassCode)
}

func TestMerge_IncompleteRowDoesNotBackfill(t *testing.T) {
	items := []model.Slot{
		slot("CS1", "", "", "08:00", "09:00", model.Sunday),
		slot("CS1", "Ghost", "Nowhere", "08:00", "09:00"),
	}

	merged := Merge(items)
	require.Len(t, merged, 1)
	assert.Empty(t, merged[0].ClassName)
	assert.Empty(t, merged[0].Location)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	items := []model.Slot{
		slot("CS1", "", "", "08:00", "09:00", model.Sunday),
		slot("CS1", "Name", "", "08:00", "09:00", model.Monday),
	}
	before := append([]model.Slot(nil), items...)

	_ = Merge(items)
	assert.Equal(t, before, items)
}
