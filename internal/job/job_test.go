package job

import (
	"testing"
	"time"

	"taskware/internal/schedule"
)

func TestNewSetsAnchorForBiweekly(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

	j := New("echo hi", schedule.Parse("every other tuesday at noon"), now)
	if j.ID == "" || !j.Enabled {
		t.Fatalf("unexpected job defaults: %+v", j)
	}
	if j.BiweeklyAnchor != "2025-03-04" {
		t.Fatalf("BiweeklyAnchor = %q, want creation date", j.BiweeklyAnchor)
	}
	if err := j.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	plain := New("echo hi", schedule.Parse("daily at 02:30"), now)
	if plain.BiweeklyAnchor != "" {
		t.Fatalf("non-biweekly job got an anchor: %q", plain.BiweeklyAnchor)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	now := time.Now()
	base := New("echo hi", schedule.Parse("every 5 minutes"), now)

	tests := []struct {
		name    string
		mutate  func(*Job)
		wantErr bool
	}{
		{"ok", func(j *Job) {}, false},
		{"missing command", func(j *Job) { j.Command = "  " }, true},
		{"missing id", func(j *Job) { j.ID = "" }, true},
		{"bad anchor", func(j *Job) { j.BiweeklyAnchor = "March 4" }, true},
		{"bad one-time", func(j *Job) { j.OneTimeAt = "tomorrow" }, true},
		{"good one-time", func(j *Job) { j.OneTimeAt = "2025-12-31T23:30" }, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			j := base
			tt.mutate(&j)
			err := j.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"Backup /home nightly!", "backup-home-nightly"},
		{"echo hi", "echo-hi"},
		{"--already--slugged--", "already-slugged"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
