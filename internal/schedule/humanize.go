package schedule

import (
	"fmt"
	"strings"
)

// Describe renders the schedule as an English phrase. For every kind except
// KindUnparsed the output is itself parseable, so Parse(Describe(s)) yields a
// schedule equal to s up to normalization; the CLI uses that to echo a
// canonical phrase back after an edit from either direction.
func (s Schedule) Describe() string {
	var b strings.Builder
	switch s.Kind {
	case KindEveryMinute:
		b.WriteString("every minute")
	case KindEveryNMinutes:
		fmt.Fprintf(&b, "every %d minutes", s.Every)
	case KindHourly:
		b.WriteString("every hour")
		if s.Minute != 0 {
			fmt.Fprintf(&b, " at minute %d", s.Minute)
		}
	case KindDaily:
		fmt.Fprintf(&b, "every day at %s", s.At)
	case KindWeekly:
		if s.Biweekly {
			b.WriteString("every other ")
		} else {
			b.WriteString("every ")
		}
		if s.Days.Empty() {
			b.WriteString("day")
		} else {
			b.WriteString(joinDays(s.Days))
		}
		fmt.Fprintf(&b, " at %s", s.At)
	default:
		return s.Raw
	}
	if s.Window != nil {
		fmt.Fprintf(&b, " between %s and %s", s.Window.Start, s.Window.End)
	}
	return b.String()
}

func joinDays(set WeekdaySet) string {
	days := set.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
