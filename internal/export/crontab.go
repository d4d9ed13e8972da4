package export

import (
	"fmt"
	"regexp"
	"strings"

	"taskware/internal/job"
)

var markerRe = regexp.MustCompile(`#\s*taskware:id=([a-f0-9\-]+)\s+enabled=(0|1)\s*$`)

// Entry is the parsed form of a taskware-managed crontab line.
type Entry struct {
	ID      string
	Cron    string
	Command string
	Enabled bool
}

// Line renders the crontab line for a job. The trailing marker comment keys
// the line to the job id; disabled jobs keep their line, commented out, so
// re-enabling restores it verbatim.
func Line(j job.Job) string {
	enabled := "0"
	if j.Enabled {
		enabled = "1"
	}
	line := fmt.Sprintf("%s %s # taskware:id=%s enabled=%s",
		j.Schedule.Cron(), runScriptPath(j), j.ID, enabled)
	if !j.Enabled {
		return "# " + line
	}
	return line
}

// ParseLine recovers a taskware entry from a crontab line. Lines without the
// marker (including foreign cron entries) return ok=false.
func ParseLine(line string) (Entry, bool) {
	enabled := true
	raw := strings.TrimSpace(line)
	if strings.HasPrefix(raw, "#") {
		trimmed := strings.TrimSpace(strings.TrimPrefix(raw, "#"))
		if !markerRe.MatchString(trimmed) {
			return Entry{}, false
		}
		enabled = false
		raw = trimmed
	}
	m := markerRe.FindStringSubmatch(raw)
	if m == nil {
		return Entry{}, false
	}
	if m[2] == "0" {
		enabled = false
	}
	body := strings.TrimSpace(markerRe.ReplaceAllString(raw, ""))
	parts := strings.Fields(body)
	if len(parts) < 6 {
		return Entry{}, false
	}
	return Entry{
		ID:      m[1],
		Cron:    strings.Join(parts[:5], " "),
		Command: strings.Join(parts[5:], " "),
		Enabled: enabled,
	}, true
}

// Crontab renders the crontab-flavored artifact set: the managed line plus
// the run wrapper the line invokes.
func Crontab(j job.Job) ([]File, error) {
	return []File{
		{Name: "taskware_" + job.Slug(j.ID) + ".cron", Mode: 0o644, Body: Line(j) + "\n"},
		{Name: j.ID + ".sh", Mode: 0o700, Body: RunScript(j)},
	}, nil
}
