package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockPattern matches "8", "8.5", "08.00", "9:50" and a trailing seconds
// component as stored by some databases ("09:50:00").
var clockPattern = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{0,2}))?(?::\d{2})?$`)

var (
	spanPattern = regexp.MustCompile(`^([0-9:.]+)\s*-\s*([0-9:.]+)$`)
	spanSplit   = regexp.MustCompile(`[\s\p{Z}-]+`)
)

// ToHHMM converts one clock reading into zero-padded "HH:MM".
//
// Minutes follow the conventions seen on scanned timetables rather than
// decimal arithmetic:
//   - no minute part means ":00";
//   - a single minute digit means half past ("8.5" is 08:30), except a lone
//     zero which is the hour itself ("8.0" is 08:00). This is a heuristic
//     for how OCR renders half hours, not a fraction of an hour;
//   - two minute digits are taken verbatim ("9.50" is 09:50, never rounded).
//
// The hour is not range checked.
func ToHHMM(raw string) (string, bool) {
	s := strings.TrimSpace(normalizeTimeText(raw))
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}

	minutes := "00"
	switch len(m[2]) {
	case 1:
		if m[2] != "0" {
			minutes = "30"
		}
	case 2:
		minutes = m[2]
	}
	return fmt.Sprintf("%02d:%s", hour, minutes), true
}

// NormalizeTimeSpan parses a range such as "8.0-9.50", "08:00–09:50" or
// "8 9.5" into start and end "HH:MM" values. A side that cannot be parsed
// comes back empty; a string with no range at all yields only a start.
func NormalizeTimeSpan(raw string) (start, end string) {
	v := strings.TrimSpace(normalizeTimeText(raw))
	if v == "" {
		return "", ""
	}

	if m := spanPattern.FindStringSubmatch(v); m != nil {
		start, _ = ToHHMM(m[1])
		end, _ = ToHHMM(m[2])
		return start, end
	}

	if parts := spanSplit.Split(v, -1); len(parts) == 2 {
		start, _ = ToHHMM(parts[0])
		end, _ = ToHHMM(parts[1])
		return start, end
	}

	start, _ = ToHHMM(v)
	return start, ""
}
