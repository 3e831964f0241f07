package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/timetable/internal/model"
)

const (
	arabicArticle     = "ال"
	arabicConjunction = "و"
)

// dayNames maps every known spelling to its day code. Arabic keys are stored
// with hamza-carrying alefs already folded to bare alef (see foldAlef), so
// "الأحد", "الاحد" and "اﻷحد" all hit the same entry.
var dayNames = map[string]model.Weekday{
	// Arabic, with article
	"الاحد":    model.Sunday,
	"الاثنين":  model.Monday,
	"الثلاثاء": model.Tuesday,
	"الثلاثا":  model.Tuesday,
	"الاربعاء": model.Wednesday,
	"الاربعا":  model.Wednesday,
	"الخميس":   model.Thursday,
	"الجمعة":   model.Friday,
	"الجمعه":   model.Friday,
	"السبت":    model.Saturday,

	// Arabic, short column headings
	"احد":    model.Sunday,
	"اثنين":  model.Monday,
	"اتنين":  model.Monday,
	"ثلاثاء": model.Tuesday,
	"ثلاثا":  model.Tuesday,
	"اربعاء": model.Wednesday,
	"اربعا":  model.Wednesday,
	"خميس":   model.Thursday,
	"جمعة":   model.Friday,
	"جمعه":   model.Friday,
	"سبت":    model.Saturday,

	// English
	"sun":   model.Sunday,
	"mon":   model.Monday,
	"tue":   model.Tuesday,
	"tues":  model.Tuesday,
	"wed":   model.Wednesday,
	"weds":  model.Wednesday,
	"thu":   model.Thursday,
	"thur":  model.Thursday,
	"thurs": model.Thursday,
	"fri":   model.Friday,
	"sat":   model.Saturday,
}

var alefFolder = strings.NewReplacer("أ", "ا", "إ", "ا", "آ", "ا", "ٱ", "ا")

func foldAlef(s string) string {
	return alefFolder.Replace(s)
}

// NormalizeDayToken maps one free-text day token to its day code.
func NormalizeDayToken(token string) (model.Weekday, bool) {
	t := cleanToken(token)
	if t == "" {
		return 0, false
	}

	key := foldAlef(strings.ToLower(t))
	if d, ok := dayNames[key]; ok {
		return d, true
	}

	for _, prefix := range []string{arabicArticle, arabicConjunction} {
		if rest, found := strings.CutPrefix(key, prefix); found {
			if d, ok := dayNames[rest]; ok {
				return d, true
			}
		}
	}

	if utf8.RuneCountInString(t) < 3 {
		return 0, false
	}
	return model.WeekdayFromCode(titleCase(firstRunes(t, 3)))
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// daySeparators splits delimited day strings: commas, slashes, pipes,
// semicolons and whitespace.
var daySeparators = regexp.MustCompile(`[,/|;\s\p{Z}]+`)

var dayTextReplacer = strings.NewReplacer(
	"،", ",", // Arabic comma
	"؛", ";", // Arabic semicolon
	"{", " ", "}", " ",
	"[", " ", "]", " ",
	`"`, " ", "'", " ",
)

// ParseDays splits a delimited day string, such as "Sun, Tue", "الأحد،
// الثلاثاء" or the array text "{Sun,Tue}", and normalizes every token.
func ParseDays(s string) model.DaySet {
	s = strings.TrimSpace(dayTextReplacer.Replace(s))
	if s == "" {
		return 0
	}
	return NormalizeDays(daySeparators.Split(s, -1))
}

// NormalizeDays normalizes a list of tokens. Unknown tokens are dropped and
// duplicates collapse.
func NormalizeDays(tokens []string) model.DaySet {
	var set model.DaySet
	for _, tok := range tokens {
		if d, ok := NormalizeDayToken(tok); ok {
			set = set.Add(d)
		}
	}
	return set
}

// Days normalizes a designator of either shape.
func Days(d model.DayDesignator) model.DaySet {
	if d.IsList {
		var set model.DaySet
		for _, tok := range d.Tokens {
			// A list element may itself be "Sun/Tue".
			set = set.Union(ParseDays(tok))
		}
		return set
	}
	return ParseDays(d.Text)
}
