package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DayDesignator is the day field of an extracted row. Extraction models emit
// either a JSON array of tokens or a single delimited string.
type DayDesignator struct {
	Text   string
	Tokens []string
	IsList bool
}

// DayList builds a list-shaped designator.
func DayList(tokens ...string) DayDesignator {
	return DayDesignator{Tokens: tokens, IsList: true}
}

// DayText builds a string-shaped designator.
func DayText(text string) DayDesignator {
	return DayDesignator{Text: text}
}

// UnmarshalJSON accepts an array of strings or numbers, a string, or null.
func (d *DayDesignator) UnmarshalJSON(data []byte) error {
	*d = DayDesignator{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		d.Text = flexString(data)
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	d.IsList = true
	for _, e := range elems {
		if s := flexString(e); s != "" {
			d.Tokens = append(d.Tokens, s)
		}
	}
	return nil
}

// MarshalJSON writes the designator back in the shape it arrived in.
func (d DayDesignator) MarshalJSON() ([]byte, error) {
	if d.IsList {
		if d.Tokens == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(d.Tokens)
	}
	return json.Marshal(d.Text)
}

// RawSlotItem is one row as produced by the extraction model. Every field is
// optional and may hold junk.
type RawSlotItem struct {
	ClassCode string        `json:"class_code"`
	ClassName string        `json:"class_name"`
	Location  string        `json:"location"`
	Days      DayDesignator `json:"days_of_week"`
	StartTime string        `json:"start_time,omitempty"`
	EndTime   string        `json:"end_time,omitempty"`
	Time      string        `json:"time,omitempty"`
	TimeSpan  string        `json:"time_span,omitempty"`
}

// UnmarshalJSON decodes a row without ever failing on a field's type:
// numbers become their literal text and anything else becomes empty.
func (r *RawSlotItem) UnmarshalJSON(data []byte) error {
	*r = RawSlotItem{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object; the row contributes nothing.
		return nil
	}

	r.ClassCode = flexString(fields["class_code"])
	r.ClassName = flexString(fields["class_name"])
	r.Location = flexString(fields["location"])
	r.StartTime = flexString(fields["start_time"])
	r.EndTime = flexString(fields["end_time"])
	r.Time = flexString(fields["time"])
	r.TimeSpan = flexString(fields["time_span"])

	days := bytes.TrimSpace(fields["days_of_week"])
	if len(days) == 0 || bytes.Equal(days, []byte("null")) {
		days = fields["days"]
	}
	if len(days) > 0 {
		_ = r.Days.UnmarshalJSON(days)
	}
	return nil
}

func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

// Slot is a normalized weekly class occurrence. A Slot coming out of the
// merger is always complete; see Complete.
type Slot struct {
	ClassCode string
	ClassName string
	Location  string
	Start     string // HH:MM
	End       string // HH:MM
	Days      DaySet
}

// Complete reports whether the slot has a code, both times and at least one
// day. Incomplete slots are never stored.
func (s Slot) Complete() bool {
	return strings.TrimSpace(s.ClassCode) != "" && s.Start != "" && s.End != "" && !s.Days.Empty()
}

// Record converts the slot into an insert-ready class record.
func (s Slot) Record() ClassRecord {
	return ClassRecord{
		ClassCode:  s.ClassCode,
		ClassName:  s.ClassName,
		Location:   s.Location,
		DaysOfWeek: s.Days.Codes(),
		StartTime:  s.Start,
		EndTime:    s.End,
		Active:     true,
	}
}

// ReconcileResult classifies a batch of slots against stored classes.
type ReconcileResult struct {
	ToInsert []Slot
	Inserted int
	Skipped  int
}

// Row renders the slot back into extraction form, with canonical day codes
// and HH:MM times.
func (s Slot) Row() RawSlotItem {
	return RawSlotItem{
		ClassCode: s.ClassCode,
		ClassName: s.ClassName,
		Location:  s.Location,
		Days:      DayList(s.Days.Codes()...),
		StartTime: s.Start,
		EndTime:   s.End,
	}
}
