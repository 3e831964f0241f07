package model

import (
	"strings"
	"time"
)

// Weekday is one of the seven canonical day codes. The numeric values match
// time.Weekday so dates convert without a lookup.
type Weekday int

// Canonical day codes, in canonical order.
const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Weekdays lists every day code in canonical Sun..Sat order.
var Weekdays = [...]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayCodes = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// String returns the 3-letter code ("Sun".."Sat").
func (d Weekday) String() string {
	if !d.Valid() {
		return ""
	}
	return weekdayCodes[d]
}

// Valid reports whether d is one of the seven day codes.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// WeekdayFromCode maps an exact canonical code such as "Tue" to its Weekday.
func WeekdayFromCode(code string) (Weekday, bool) {
	for i, c := range weekdayCodes {
		if c == code {
			return Weekday(i), true
		}
	}
	return 0, false
}

// WeekdayOf returns the day code of a calendar date.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// DaySet is a set of day codes. Iteration always follows canonical order,
// never insertion order.
type DaySet uint8

// NewDaySet builds a set from the given days, ignoring invalid values.
func NewDaySet(days ...Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Add returns the set with d included.
func (s DaySet) Add(d Weekday) DaySet {
	if !d.Valid() {
		return s
	}
	return s | 1<<uint(d)
}

// Has reports whether d is in the set.
func (s DaySet) Has(d Weekday) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

// Union returns the days present in either set.
func (s DaySet) Union(other DaySet) DaySet {
	return s | other
}

// Empty reports whether the set holds no days.
func (s DaySet) Empty() bool {
	return s&0x7f == 0
}

// Len returns the number of days in the set.
func (s DaySet) Len() int {
	n := 0
	for _, d := range Weekdays {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Days returns the members in Sun..Sat order.
func (s DaySet) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for _, d := range Weekdays {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Codes returns the members as 3-letter codes in Sun..Sat order.
func (s DaySet) Codes() []string {
	codes := make([]string, 0, 7)
	for _, d := range s.Days() {
		codes = append(codes, d.String())
	}
	return codes
}

// String joins the codes with "|", the form used inside canonical keys.
func (s DaySet) String() string {
	return strings.Join(s.Codes(), "|")
}
