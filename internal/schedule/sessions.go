package schedule

import (
	"sort"
	"time"

	"github.com/Veraticus/timetable/internal/model"
	"github.com/Veraticus/timetable/internal/normalize"
)

// SessionsOn expands weekly classes into the sessions that meet on date,
// ordered by start time. Start and end are placed in date's location.
// Classes whose times cannot be read are left out.
func SessionsOn(classes []model.ClassRecord, date time.Time) []model.Session {
	day := model.WeekdayOf(date)

	var sessions []model.Session
	for _, c := range classes {
		var days model.DaySet
		for _, d := range c.DaysOfWeek {
			days = days.Union(normalize.ParseDays(d))
		}
		if !days.Has(day) {
			continue
		}

		start, okStart := clockOn(date, c.StartTime)
		end, okEnd := clockOn(date, c.EndTime)
		if !okStart || !okEnd {
			continue
		}
		sessions = append(sessions, model.Session{Class: c, Start: start, End: end})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})
	return sessions
}

func clockOn(date time.Time, hhmm string) (time.Time, bool) {
	t, err := time.Parse("15:04", truncate(hhmm))
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), true
}
