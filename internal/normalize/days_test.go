package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/timetable/internal/model"
)

func TestNormalizeDayToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		want   model.Weekday
		wantOK bool
	}{
		{name: "arabic sunday with hamza", token: "الأحد", want: model.Sunday, wantOK: true},
		{name: "arabic sunday without hamza", token: "الاحد", want: model.Sunday, wantOK: true},
		{name: "arabic sunday lam-alef ligature", token: "اﻷحد", want: model.Sunday, wantOK: true},
		{name: "arabic sunday short", token: "أحد", want: model.Sunday, wantOK: true},
		{name: "arabic monday kasra hamza", token: "الإثنين", want: model.Monday, wantOK: true},
		{name: "arabic monday bare", token: "اثنين", want: model.Monday, wantOK: true},
		{name: "arabic tuesday", token: "الثلاثاء", want: model.Tuesday, wantOK: true},
		{name: "arabic wednesday hamza", token: "الأربعاء", want: model.Wednesday, wantOK: true},
		{name: "arabic thursday", token: "الخميس", want: model.Thursday, wantOK: true},
		{name: "arabic friday", token: "الجمعة", want: model.Friday, wantOK: true},
		{name: "arabic saturday short", token: "سبت", want: model.Saturday, wantOK: true},
		{name: "article stripped retry", token: "الاتنين", want: model.Monday, wantOK: true},
		{name: "conjunction prefix", token: "والثلاثاء", want: model.Tuesday, wantOK: true},
		{name: "rtl marks", token: "\u200fالسبت\u200e", want: model.Saturday, wantOK: true},
		{name: "diacritics", token: "الأَحَد", want: model.Sunday, wantOK: true},
		{name: "tatweel", token: "الخمـــيس", want: model.Thursday, wantOK: true},
		{name: "arabic digit artifact", token: "الأحد١", want: model.Sunday, wantOK: true},
		{name: "english lower", token: "sun", want: model.Sunday, wantOK: true},
		{name: "english upper", token: "MON", want: model.Monday, wantOK: true},
		{name: "english tues", token: "Tues", want: model.Tuesday, wantOK: true},
		{name: "english thur with dot", token: "thur.", want: model.Thursday, wantOK: true},
		{name: "english full name", token: "Wednesday", want: model.Wednesday, wantOK: true},
		{name: "english full name upper", token: "FRIDAY", want: model.Friday, wantOK: true},
		{name: "padded", token: "  Sat  ", want: model.Saturday, wantOK: true},
		{name: "empty", token: "", wantOK: false},
		{name: "whitespace only", token: "   ", wantOK: false},
		{name: "unknown english", token: "weekend", wantOK: false},
		{name: "unknown arabic", token: "صباحا", wantOK: false},
		{name: "too short", token: "su", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDayToken(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "comma separated", input: "Tue, Sun", want: []string{"Sun", "Tue"}},
		{name: "arabic comma", input: "الثلاثاء، الأحد", want: []string{"Sun", "Tue"}},
		{name: "slashes and pipes", input: "Thu/Mon|Wed", want: []string{"Mon", "Wed", "Thu"}},
		{name: "whitespace runs", input: "Sat   Fri\tThu", want: []string{"Thu", "Fri", "Sat"}},
		{name: "curly array text", input: "{Sun,Tue}", want: []string{"Sun", "Tue"}},
		{name: "json array text", input: `["Mon","Wed"]`, want: []string{"Mon", "Wed"}},
		{name: "duplicates collapse", input: "Sun, sun, الأحد", want: []string{"Sun"}},
		{name: "unknown tokens dropped", input: "Sun, lunch, Tue", want: []string{"Sun", "Tue"}},
		{name: "all unknown", input: "lunch break", want: []string{}},
		{name: "empty", input: "", want: []string{}},
		{name: "empty braces", input: "{}", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDays(tt.input).Codes())
		})
	}
}

func TestNormalizeDays_CanonicalOrder(t *testing.T) {
	inputs := [][]string{
		{"Sat", "Fri", "Thu", "Wed", "Tue", "Mon", "Sun"},
		{"الخميس", "الأحد", "Tue"},
		{"wed", "WED", "Mon"},
	}
	canonical := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	for _, in := range inputs {
		codes := NormalizeDays(in).Codes()
		// Output must be a subsequence of the canonical order.
		pos := 0
		for _, c := range codes {
			for pos < len(canonical) && canonical[pos] != c {
				pos++
			}
			assert.Less(t, pos, len(canonical), "code %q out of canonical order in %v", c, codes)
			pos++
		}
	}
}

func TestNormalizeDays_Idempotent(t *testing.T) {
	inputs := [][]string{
		{"الأحد", "الثلاثاء"},
		{"thur.", "sat", "Sun"},
		{"garbage"},
		{},
		{"Mon", "mon", "الاثنين", "Fri"},
	}

	for _, in := range inputs {
		first := NormalizeDays(in)
		second := NormalizeDays(first.Codes())
		assert.Equal(t, first, second, "input %v", in)
		assert.Equal(t, first, ParseDays(first.String()))
	}
}

func TestDays(t *testing.T) {
	assert.Equal(t, []string{"Sun", "Tue"}, Days(model.DayList("Tue", "Sun/Tue")).Codes())
	assert.Equal(t, []string{"Mon"}, Days(model.DayText("الاثنين")).Codes())
	assert.True(t, Days(model.DayDesignator{}).Empty())
}

func TestDigitsToASCII(t *testing.T) {
	assert.Equal(t, "CS101", DigitsToASCII("CS١٠١"))
	assert.Equal(t, "0123456789", DigitsToASCII("٠١٢٣٤٥٦٧٨٩"))
	assert.Equal(t, "47", DigitsToASCII("۴۷"))
	assert.Equal(t, "abc", DigitsToASCII("abc"))
}
