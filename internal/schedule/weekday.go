package schedule

import (
	"fmt"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekdays resolves a free-text weekday phrase into a WeekdaySet and a
// biweekly flag.
//
// Accepted: single day names (full or common abbreviations, optional plural
// "s"), comma-separated lists, and "and"/"&" conjunctions. A leading "every"
// is ignored; the leading modifier "every other" sets biweekly=true.
//
// Any unrecognized day token fails the whole phrase with ErrNotRecognized.
// Dropping one day silently would be worse than rejecting the input, so this
// resolver never does partial results.
func ParseWeekdays(text string) (WeekdaySet, bool, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, ",", " ")

	biweekly := false
	fields := strings.Fields(s)
	if len(fields) >= 2 && fields[0] == "every" && fields[1] == "other" {
		biweekly = true
		fields = fields[2:]
	} else if len(fields) >= 1 && fields[0] == "every" {
		fields = fields[1:]
	}

	var set WeekdaySet
	for _, tok := range fields {
		if tok == "and" || tok == "on" {
			continue
		}
		d, ok := weekdayNames[tok]
		if !ok {
			// Plural marker: "mondays" names the set of Mondays, not a
			// different day.
			d, ok = weekdayNames[strings.TrimSuffix(tok, "s")]
		}
		if !ok {
			return 0, false, fmt.Errorf("weekday %q: %w", tok, ErrNotRecognized)
		}
		set.Add(d)
	}
	if set.Empty() {
		return 0, false, fmt.Errorf("weekday phrase %q: %w", text, ErrNotRecognized)
	}
	return set, biweekly, nil
}
