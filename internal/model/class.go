package model

import "time"

// ClassRecord is a weekly class as stored. DaysOfWeek and the time fields
// hold whatever the store returns; they are normalized again before keying.
type ClassRecord struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"id"`
	UserHandle string    `json:"user_handle"`
	ClassCode  string    `json:"class_code"`
	ClassName  string    `json:"class_name"`
	Location   string    `json:"location"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	DaysOfWeek []string  `json:"days_of_week"`
	Active     bool      `json:"active"`
}

// Session is one concrete meeting of a class on a given date.
type Session struct {
	Start time.Time
	End   time.Time
	Class ClassRecord
}
