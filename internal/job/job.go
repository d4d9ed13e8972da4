package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskware/internal/schedule"
)

var ErrInvalid = errors.New("invalid job")

// Job binds a command to a schedule plus the metadata the exporters need.
//
// BiweeklyAnchor is the week-parity epoch for biweekly schedules: the date of
// a week-0 run. It is fixed when the job is created and persisted with the
// job, never recomputed at export time, so regenerating artifacts later stays
// idempotent.
type Job struct {
	ID          string
	Command     string
	Schedule    schedule.Schedule
	Description string
	User        string
	Enabled     bool

	// BiweeklyAnchor is "YYYY-MM-DD"; empty unless Schedule.Biweekly.
	BiweeklyAnchor string

	// OneTimeAt ("YYYY-MM-DDTHH:MM", local clock) gates the run wrapper until
	// the wall clock reaches it; the job runs once and the wrapper cleans up.
	OneTimeAt string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a job with a fresh id. For biweekly schedules the anchor
// defaults to now's date, making the creation week the "on" week.
func New(command string, s schedule.Schedule, now time.Time) Job {
	j := Job{
		ID:        uuid.NewString(),
		Command:   command,
		Schedule:  s,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.Biweekly {
		j.BiweeklyAnchor = now.Format("2006-01-02")
	}
	return j
}

// Validate checks the fields the store and exporters rely on.
func (j Job) Validate() error {
	if strings.TrimSpace(j.ID) == "" {
		return errors.Join(ErrInvalid, errors.New("id required"))
	}
	if strings.TrimSpace(j.Command) == "" {
		return errors.Join(ErrInvalid, errors.New("command required"))
	}
	if j.Schedule.Biweekly && j.BiweeklyAnchor == "" {
		return errors.Join(ErrInvalid, errors.New("biweekly schedule needs an anchor date"))
	}
	if j.BiweeklyAnchor != "" {
		if _, err := time.Parse("2006-01-02", j.BiweeklyAnchor); err != nil {
			return errors.Join(ErrInvalid, errors.New("anchor must be YYYY-MM-DD"))
		}
	}
	if j.OneTimeAt != "" {
		if _, err := time.Parse("2006-01-02T15:04", j.OneTimeAt); err != nil {
			return errors.Join(ErrInvalid, errors.New("one-time target must be YYYY-MM-DDTHH:MM"))
		}
	}
	return nil
}

// Slug derives a filesystem- and Salt-safe identifier fragment.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
