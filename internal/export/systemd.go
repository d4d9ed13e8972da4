package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"

	"taskware/internal/job"
	"taskware/internal/schedule"
)

// OnCalendar renders the schedule as a systemd calendar expression.
// Unparsed schedules have no calendar form and error.
func OnCalendar(s schedule.Schedule) (string, error) {
	switch s.Kind {
	case schedule.KindEveryMinute:
		return "*-*-* *:*:00", nil
	case schedule.KindEveryNMinutes:
		hours := "*"
		if s.Window != nil {
			hours = fmt.Sprintf("%d..%d", s.Window.Start.Hour, s.Window.End.Hour)
		}
		return fmt.Sprintf("*-*-* %s:0/%d:00", hours, s.Every), nil
	case schedule.KindHourly:
		return fmt.Sprintf("*-*-* *:%02d:00", s.Minute), nil
	case schedule.KindDaily:
		return fmt.Sprintf("*-*-* %02d:%02d:00", s.At.Hour, s.At.Minute), nil
	case schedule.KindWeekly:
		if s.Days.Empty() {
			return fmt.Sprintf("*-*-* %02d:%02d:00", s.At.Hour, s.At.Minute), nil
		}
		var names []string
		for _, d := range s.Days.Days() {
			names = append(names, d.String()[:3])
		}
		return fmt.Sprintf("%s *-*-* %02d:%02d:00", strings.Join(names, ","), s.At.Hour, s.At.Minute), nil
	default:
		return "", fmt.Errorf("schedule %q has no calendar form", s.Raw)
	}
}

// Systemd renders a .timer/.service unit pair. Biweekly and one-time jobs run
// through the wrapper script (systemd's OnCalendar has no biweekly primitive
// either), which is emitted alongside the units.
func Systemd(j job.Job) ([]File, error) {
	cal, err := OnCalendar(j.Schedule)
	if err != nil {
		return nil, err
	}
	name := "taskware-" + job.Slug(j.ID)

	needsWrapper := j.Schedule.Biweekly || j.OneTimeAt != ""
	execStart := "/bin/sh -c " + shellQuote(j.Command)
	if needsWrapper {
		execStart = "/bin/sh " + runScriptPath(j)
	}

	description := "Taskware job " + j.ID
	if j.Description != "" {
		description = j.Description
	}

	service, err := serializeUnit(
		unit.NewUnitOption("Unit", "Description", description),
		unit.NewUnitOption("Service", "Type", "oneshot"),
		unit.NewUnitOption("Service", "ExecStart", execStart),
	)
	if err != nil {
		return nil, err
	}

	timer, err := serializeUnit(
		unit.NewUnitOption("Unit", "Description", "Timer for "+description),
		unit.NewUnitOption("Timer", "OnCalendar", cal),
		unit.NewUnitOption("Timer", "Persistent", "true"),
		unit.NewUnitOption("Timer", "Unit", name+".service"),
		unit.NewUnitOption("Install", "WantedBy", "timers.target"),
	)
	if err != nil {
		return nil, err
	}

	files := []File{
		{Name: name + ".service", Mode: 0o644, Body: service},
		{Name: name + ".timer", Mode: 0o644, Body: timer},
	}
	if needsWrapper {
		files = append(files, File{Name: j.ID + ".sh", Mode: 0o700, Body: RunScript(j)})
	}
	return files, nil
}

func serializeUnit(opts ...*unit.UnitOption) (string, error) {
	b, err := io.ReadAll(unit.Serialize(opts))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
