package export

import (
	"strings"
	"testing"
	"time"

	"taskware/internal/job"
	"taskware/internal/schedule"
)

func TestLineRoundTrip(t *testing.T) {
	t.Parallel()
	j := testJob(t, "every monday, wednesday and thursday at 5p")

	line := Line(j)
	if !strings.HasPrefix(line, "0 17 * * 1,3,4 ") {
		t.Fatalf("line does not start with cron fields: %q", line)
	}

	e, ok := ParseLine(line)
	if !ok {
		t.Fatalf("ParseLine failed on own output: %q", line)
	}
	if e.ID != j.ID || e.Cron != "0 17 * * 1,3,4" || !e.Enabled {
		t.Fatalf("ParseLine = %+v", e)
	}
}

func TestLineDisabled(t *testing.T) {
	t.Parallel()
	j := testJob(t, "every 5 minutes")
	j.Enabled = false

	line := Line(j)
	if !strings.HasPrefix(line, "# ") {
		t.Fatalf("disabled line must be commented out: %q", line)
	}
	e, ok := ParseLine(line)
	if !ok || e.Enabled {
		t.Fatalf("ParseLine(%q) = %+v ok=%v, want disabled entry", line, e, ok)
	}
}

func TestParseLineForeign(t *testing.T) {
	t.Parallel()
	for _, line := range []string{
		"*/5 * * * * /usr/bin/backup",          // unmanaged entry
		"# plain comment",                      //
		"MAILTO=ops@example.com",               // environment line
		"0 17 * * 1 cmd # taskware:id= enabled=1", // empty id
		"",
	} {
		if _, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) accepted a non-taskware line", line)
		}
	}
}

func TestCrontabArtifacts(t *testing.T) {
	t.Parallel()
	j := testJob(t, "every other tuesday at noon")
	j.OneTimeAt = ""

	files, err := Crontab(j)
	if err != nil {
		t.Fatalf("Crontab: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want cron line + wrapper", len(files))
	}
	if files[1].Mode != 0o700 {
		t.Errorf("wrapper mode = %o, want 0700", files[1].Mode)
	}
	if !strings.Contains(files[0].Body, j.ID+".sh") {
		t.Errorf("cron line should invoke the run wrapper: %q", files[0].Body)
	}
}

func TestRunScriptGuards(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	plain := job.New("echo 'it''s time'", schedule.Parse("daily at 02:30"), now)
	body := RunScript(plain)
	if strings.Contains(body, "Biweekly gate") || strings.Contains(body, "One-time gate") {
		t.Errorf("plain job got guards:\n%s", body)
	}
	if !strings.Contains(body, "eval ") || !strings.Contains(body, ".status") {
		t.Errorf("wrapper must eval the command and log status:\n%s", body)
	}

	bi := job.New("echo hi", schedule.Parse("every other tuesday at noon"), now)
	bi.OneTimeAt = "2025-12-31T23:30"
	body = RunScript(bi)
	for _, want := range []string{
		`ANCHOR="2025-06-01"`,
		"weeks % 2",
		`TARGET="2025-12-31T23:30"`,
		"One-time cleanup",
		"taskware:id=" + bi.ID,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("wrapper missing %q:\n%s", want, body)
		}
	}
}
