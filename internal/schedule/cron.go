package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cron renders the schedule as a standard five-field cron expression
// (minute, hour, day-of-month, month, day-of-week; Sunday=0).
//
// The mapping is total and deterministic:
//   - every minute            -> "* * * * *"
//   - every N minutes         -> "*/N * * * *" (hour field "S-E" when a
//     window is attached; the window's minutes are not representable in
//     plain cron and are ignored)
//   - hourly at minute M      -> "M * * * *"
//   - daily at H:M            -> "M H * * *"
//   - weekly at H:M on days   -> "M H * * d1,d2,..." (empty set -> "*")
//   - unparsed                -> the raw text when it is already shaped like
//     a five-field expression, else the "* * * * *" placeholder
//
// A biweekly weekly schedule emits the same fields as its weekly twin: cron
// cannot express the off-week suppression, so that lives in the export
// generator's wrapper script instead.
func (s Schedule) Cron() string {
	switch s.Kind {
	case KindEveryMinute:
		return "* * * * *"
	case KindEveryNMinutes:
		hour := "*"
		if s.Window != nil {
			hour = fmt.Sprintf("%d-%d", s.Window.Start.Hour, s.Window.End.Hour)
		}
		return fmt.Sprintf("*/%d %s * * *", s.Every, hour)
	case KindHourly:
		return fmt.Sprintf("%d * * * *", s.Minute)
	case KindDaily:
		return fmt.Sprintf("%d %d * * *", s.At.Minute, s.At.Hour)
	case KindWeekly:
		return fmt.Sprintf("%d %d * * %s", s.At.Minute, s.At.Hour, s.Days.cronField())
	default:
		if len(strings.Fields(s.Raw)) == 5 {
			return s.Raw
		}
		return "* * * * *"
	}
}

// FromCron classifies a five-field cron expression back into a Schedule,
// using the inverse of the Cron mapping in the same priority order. Field
// combinations outside the five known shapes (and anything that is not five
// fields) come back as KindUnparsed carrying the raw string.
//
// FromCron(s.Cron()).Equal(s) holds for every schedule the parser or
// structured edits can produce, except KindUnparsed, windows attached to
// non-interval frequencies, and the biweekly flag (all intentionally not
// serialized into cron).
func FromCron(expr string) Schedule {
	unparsed := Schedule{Kind: KindUnparsed, Raw: expr}

	fields := strings.Fields(strings.TrimSpace(expr))
	if len(fields) != 5 {
		return unparsed
	}
	minute, hour, dom, month, dow := fields[0], fields[1], fields[2], fields[3], fields[4]
	if dom != "*" || month != "*" {
		return unparsed
	}

	// Every minute.
	if minute == "*" && hour == "*" && dow == "*" {
		return Schedule{Kind: KindEveryMinute}
	}

	// Every N minutes, optionally bounded to an hour window.
	if n, ok := stepValue(minute); ok {
		if dow != "*" {
			return unparsed
		}
		if hour == "*" {
			return Schedule{Kind: KindEveryNMinutes, Every: n}
		}
		if w, ok := hourWindow(hour); ok {
			return Schedule{Kind: KindEveryNMinutes, Every: n, Window: &w}
		}
		return unparsed
	}

	m, ok := fieldValue(minute, 59)
	if !ok {
		return unparsed
	}

	// Hourly.
	if hour == "*" && dow == "*" {
		return Schedule{Kind: KindHourly, Minute: m}
	}

	h, ok := fieldValue(hour, 23)
	if !ok {
		return unparsed
	}

	// Daily.
	if dow == "*" {
		return Schedule{Kind: KindDaily, At: TimeOfDay{Hour: h, Minute: m}}
	}

	// Weekly.
	if days, ok := weekdayList(dow); ok {
		return Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: h, Minute: m}, Days: days}
	}
	return unparsed
}

// stepValue matches "*/N" with N in 1..59.
func stepValue(field string) (int, bool) {
	rest, ok := strings.CutPrefix(field, "*/")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > 59 {
		return 0, false
	}
	return n, true
}

// fieldValue matches a bare integer 0..max.
func fieldValue(field string, max int) (int, bool) {
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 || n > max {
		return 0, false
	}
	return n, true
}

// hourWindow matches "S-E" with 0 <= S <= E <= 23. Minutes are zero: cron's
// hour range carries no sub-hour resolution.
func hourWindow(field string) (TimeWindow, bool) {
	lo, hi, ok := strings.Cut(field, "-")
	if !ok {
		return TimeWindow{}, false
	}
	s, ok := fieldValue(lo, 23)
	if !ok {
		return TimeWindow{}, false
	}
	e, ok := fieldValue(hi, 23)
	if !ok || e < s {
		return TimeWindow{}, false
	}
	return TimeWindow{Start: TimeOfDay{Hour: s}, End: TimeOfDay{Hour: e}}, true
}

// weekdayList matches a comma list of weekday codes 0..6 (Sunday=0).
func weekdayList(field string) (WeekdaySet, bool) {
	var set WeekdaySet
	for _, tok := range strings.Split(field, ",") {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 || n > 6 {
			return 0, false
		}
		set.Add(time.Weekday(n))
	}
	if set.Empty() {
		return 0, false
	}
	return set, true
}
