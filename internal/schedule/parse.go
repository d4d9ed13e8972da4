package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSpace  = regexp.MustCompile(`\s+`)
	reWindow = regexp.MustCompile(`\b(?:between|from)\s+(` + timePattern + `)\s+(?:and|to)\s+(` + timePattern + `)\b`)
	reAtTime = regexp.MustCompile(`\bat\s+(` + timePattern + `)\b`)

	reEveryMinute = regexp.MustCompile(`^every\s+minute$`)
	reEveryN      = regexp.MustCompile(`^every\s+(\d{1,3})\s+(?:minutes?|mins?)$`)
	reHourly      = regexp.MustCompile(`^(?:every\s+hour|hourly)(?:\s+at\s+(?:minute\s+)?:?(\d{1,2}))?$`)
	reDaily       = regexp.MustCompile(`^(?:(?:every\s+day|daily)\s+at\s+(` + timePattern + `)|at\s+(` + timePattern + `)\s+(?:every\s+day|daily))$`)
)

// matchers are tried in fixed priority order; the first match wins. Keeping
// them as separate pure functions keeps the priority explicit and each family
// testable in isolation.
var matchers = []func(string) (Schedule, bool){
	matchEveryMinute,
	matchEveryN,
	matchHourly,
	matchDaily,
	matchWeekly,
}

// Parse converts a free-text schedule phrase into a Schedule. It is total:
// input that matches no pattern family comes back as KindUnparsed carrying
// the original text, so callers can always render something editable.
//
// A window phrase ("between 9a and 5p", "from 9:00 to 17:00") is extracted
// first and attached to whichever frequency family matches. Only interval
// frequencies serialize the window into cron; daily/weekly schedules retain
// it as data (a documented restriction, not a silent drop).
func Parse(text string) Schedule {
	norm := reSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
	if norm == "" {
		return Schedule{Kind: KindUnparsed, Raw: text}
	}

	window, rest, ok := extractWindow(norm)
	if ok {
		for _, match := range matchers {
			if s, matched := match(rest); matched {
				s.Window = window
				return s
			}
		}
	}
	return Schedule{Kind: KindUnparsed, Raw: text}
}

// extractWindow strips an optional time-window phrase. ok=false means a
// window phrase was present but malformed (unparseable bound, or start after
// end); the caller then refuses the whole input rather than dropping the
// window silently.
func extractWindow(s string) (window *TimeWindow, rest string, ok bool) {
	loc := reWindow.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil, s, true
	}
	start, err := ParseTime(s[loc[2]:loc[3]])
	if err != nil {
		return nil, s, false
	}
	end, err := ParseTime(s[loc[4]:loc[5]])
	if err != nil {
		return nil, s, false
	}
	if end.Hour < start.Hour || (end.Hour == start.Hour && end.Minute < start.Minute) {
		return nil, s, false
	}
	rest = strings.TrimSpace(reSpace.ReplaceAllString(s[:loc[0]]+" "+s[loc[1]:], " "))
	return &TimeWindow{Start: start, End: end}, rest, true
}

func matchEveryMinute(s string) (Schedule, bool) {
	if !reEveryMinute.MatchString(s) {
		return Schedule{}, false
	}
	return Schedule{Kind: KindEveryMinute}, true
}

func matchEveryN(s string) (Schedule, bool) {
	m := reEveryN.FindStringSubmatch(s)
	if m == nil {
		return Schedule{}, false
	}
	n, _ := strconv.Atoi(m[1])
	if n < 1 || n > 59 {
		return Schedule{}, false
	}
	return Schedule{Kind: KindEveryNMinutes, Every: n}, true
}

func matchHourly(s string) (Schedule, bool) {
	m := reHourly.FindStringSubmatch(s)
	if m == nil {
		return Schedule{}, false
	}
	minute := 0
	if m[1] != "" {
		minute, _ = strconv.Atoi(m[1])
		if minute > 59 {
			return Schedule{}, false
		}
	}
	return Schedule{Kind: KindHourly, Minute: minute}, true
}

func matchDaily(s string) (Schedule, bool) {
	m := reDaily.FindStringSubmatch(s)
	if m == nil {
		return Schedule{}, false
	}
	token := m[1]
	if token == "" {
		token = m[2]
	}
	t, err := ParseTime(token)
	if err != nil {
		return Schedule{}, false
	}
	return Schedule{Kind: KindDaily, At: t}, true
}

// matchWeekly extracts the time phrase and the weekday phrase independently,
// so "at 5p every monday" and "every monday at 5p" recognize identically.
func matchWeekly(s string) (Schedule, bool) {
	loc := reAtTime.FindStringSubmatchIndex(s)
	if loc == nil {
		return Schedule{}, false
	}
	t, err := ParseTime(s[loc[2]:loc[3]])
	if err != nil {
		return Schedule{}, false
	}
	rest := strings.TrimSpace(reSpace.ReplaceAllString(s[:loc[0]]+" "+s[loc[1]:], " "))
	rest = strings.TrimPrefix(rest, "weekly ")
	if rest == "" {
		return Schedule{}, false
	}
	days, biweekly, err := ParseWeekdays(rest)
	if err != nil {
		return Schedule{}, false
	}
	return Schedule{Kind: KindWeekly, At: t, Days: days, Biweekly: biweekly}, true
}
