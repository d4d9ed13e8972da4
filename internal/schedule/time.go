package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timePattern is the sub-expression shared by the resolvers that need to spot
// a time token inside a larger phrase: compact meridiem ("5p", "7:15am",
// "5:00 pm"), 24h "HH:MM", or a named time.
const timePattern = `(?:\d{1,2}(?::\d{2})?\s*[ap]m?|\d{1,2}:\d{2}|noon|midnight)`

var (
	reMeridiem = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*([ap])m?$`)
	re24h      = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseTime resolves a free-text time token into a 24h TimeOfDay.
//
// Recognized forms:
//   - named times: "noon" (12:00), "midnight" (00:00)
//   - compact meridiem: hour 1-12, optional ":MM", "a"/"p" with optional "m"
//     ("5p", "7:15a", "5:00 pm"); minute defaults to 00
//   - 24h "HH:MM"
//
// Hour 12 with "a" means 00:xx, with "p" means 12:xx. Hour 0 is only valid in
// the 24h form or as "midnight". Out-of-range values return ErrNotRecognized,
// never a clamped time.
func ParseTime(text string) (TimeOfDay, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "noon":
		return TimeOfDay{Hour: 12}, nil
	case "midnight":
		return TimeOfDay{}, nil
	}

	if m := reMeridiem.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min := 0
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		if h < 1 || h > 12 || min > 59 {
			return TimeOfDay{}, fmt.Errorf("time %q: %w", text, ErrNotRecognized)
		}
		if m[3] == "p" && h != 12 {
			h += 12
		}
		if m[3] == "a" && h == 12 {
			h = 0
		}
		return TimeOfDay{Hour: h, Minute: min}, nil
	}

	if m := re24h.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h > 23 || min > 59 {
			return TimeOfDay{}, fmt.Errorf("time %q: %w", text, ErrNotRecognized)
		}
		return TimeOfDay{Hour: h, Minute: min}, nil
	}

	return TimeOfDay{}, fmt.Errorf("time %q: %w", text, ErrNotRecognized)
}
