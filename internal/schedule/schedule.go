package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNotRecognized reports that a phrase resolver found no match. Out-of-range
// numeric values are reported the same way, never clamped.
var ErrNotRecognized = errors.New("not recognized")

// Kind classifies a Schedule.
//
// KindUnparsed is a valid Schedule shape, not an error: it carries input the
// engine could not classify so callers can keep rendering and editing it as
// free text.
type Kind int

const (
	KindUnparsed Kind = iota
	KindEveryMinute
	KindEveryNMinutes
	KindHourly
	KindDaily
	KindWeekly
)

func (k Kind) String() string {
	switch k {
	case KindEveryMinute:
		return "every-minute"
	case KindEveryNMinutes:
		return "every-n-minutes"
	case KindHourly:
		return "hourly"
	case KindDaily:
		return "daily"
	case KindWeekly:
		return "weekly"
	default:
		return "unparsed"
	}
}

// TimeOfDay is a normalized 24h wall-clock time. No timezone is attached;
// times are interpreted in whatever local clock the target scheduler uses.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeWindow bounds when an interval-based frequency may fire within a single
// day. Start must not be after End; overnight wraparound is not supported.
type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

// WeekdaySet is a bitmask of weekdays, Sunday=bit 0 through Saturday=bit 6
// (matching cron's day-of-week numbering). Membership only; an empty set on a
// weekly schedule means "every day".
type WeekdaySet uint8

func (s *WeekdaySet) Add(d time.Weekday)    { *s |= 1 << uint(d) }
func (s WeekdaySet) Has(d time.Weekday) bool { return s&(1<<uint(d)) != 0 }
func (s WeekdaySet) Empty() bool             { return s == 0 }

// Days returns the member weekdays in Sunday-first order.
func (s WeekdaySet) Days() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// cronField renders the set as a cron day-of-week field ("1,3,4"), with the
// empty set encoding as "*".
func (s WeekdaySet) cronField() string {
	if s.Empty() {
		return "*"
	}
	var parts []string
	for _, d := range s.Days() {
		parts = append(parts, fmt.Sprintf("%d", int(d)))
	}
	sort.Strings(parts) // single digits, lexicographic == numeric
	return strings.Join(parts, ",")
}

// Schedule is the canonical structured representation: the hub between the
// natural-language parser, structured field edits, the cron generator and the
// export generator. It is a plain value owned by one editing session; nothing
// here locks.
type Schedule struct {
	Kind Kind

	// Every is the run interval in minutes (KindEveryNMinutes, 1-59).
	Every int

	// Minute is the minute of the hour (KindHourly).
	Minute int

	// At is the time of day (KindDaily, KindWeekly).
	At TimeOfDay

	// Days restricts KindWeekly to these weekdays; empty means every day.
	Days WeekdaySet

	// Biweekly marks a weekly schedule that fires every other week. Cron has
	// no native biweekly primitive, so this flag is carried to the export
	// generator (wrapper script) rather than into the cron fields.
	Biweekly bool

	// Window optionally bounds interval-based schedules. It is retained on
	// daily/weekly schedules too, but only EveryNMinutes serializes it into
	// the emitted cron expression.
	Window *TimeWindow

	// Raw preserves the original input for KindUnparsed.
	Raw string
}

// Equal compares two schedules field-by-field, dereferencing windows.
func (s Schedule) Equal(o Schedule) bool {
	if s.Kind != o.Kind || s.Every != o.Every || s.Minute != o.Minute ||
		s.At != o.At || s.Days != o.Days || s.Biweekly != o.Biweekly || s.Raw != o.Raw {
		return false
	}
	if (s.Window == nil) != (o.Window == nil) {
		return false
	}
	if s.Window != nil && *s.Window != *o.Window {
		return false
	}
	return true
}

// Normalized canonicalizes shapes that encode the same trigger set: a weekly
// schedule with an empty day set is a daily schedule. Structured field edits
// can produce the former; the cron round trip always yields the latter.
func (s Schedule) Normalized() Schedule {
	if s.Kind == KindWeekly && s.Days.Empty() && !s.Biweekly {
		s.Kind = KindDaily
	}
	return s
}
