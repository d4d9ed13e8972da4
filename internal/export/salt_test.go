package export

import (
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"taskware/internal/job"
	"taskware/internal/schedule"
)

func testJob(t *testing.T, phrase string) job.Job {
	t.Helper()
	s := schedule.Parse(phrase)
	if s.Kind == schedule.KindUnparsed {
		t.Fatalf("test phrase %q did not parse", phrase)
	}
	j := job.New("echo hi", s, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	j.User = "alice"
	return j
}

func TestSaltSimple(t *testing.T) {
	t.Parallel()
	j := testJob(t, "daily at 02:30")

	files, err := Salt(j)
	if err != nil {
		t.Fatalf("Salt: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	body := files[0].Body

	var state map[string]map[string][]map[string]any
	if err := yaml.Unmarshal([]byte(body), &state); err != nil {
		t.Fatalf("emitted SLS is not valid YAML: %v\n%s", err, body)
	}
	slsID := "taskware_job_" + job.Slug(j.ID)
	args := flattenArgs(t, state[slsID]["cron.present"])
	want := map[string]any{
		"name": "echo hi", "user": "alice",
		"minute": "30", "hour": "2", "daymonth": "*", "month": "*", "dayweek": "*",
	}
	for k, v := range want {
		if args[k] != v {
			t.Errorf("cron.present %s = %v, want %v", k, args[k], v)
		}
	}
}

func TestSaltBiweekly(t *testing.T) {
	t.Parallel()
	j := testJob(t, "every other tuesday at noon")

	files, err := Salt(j)
	if err != nil {
		t.Fatalf("Salt: %v", err)
	}
	body := files[0].Body

	var state map[string]map[string][]map[string]any
	if err := yaml.Unmarshal([]byte(body), &state); err != nil {
		t.Fatalf("emitted SLS is not valid YAML: %v\n%s", err, body)
	}
	slsID := "taskware_job_" + job.Slug(j.ID)
	wrapperID := slsID + "_wrapper_script"
	if _, ok := state[wrapperID]; !ok {
		t.Fatalf("biweekly export missing wrapper state %s\n%s", wrapperID, body)
	}

	// Weekly cron fields must ignore the biweekly flag entirely.
	args := flattenArgs(t, state[slsID]["cron.present"])
	if args["minute"] != "0" || args["hour"] != "12" || args["dayweek"] != "2" {
		t.Errorf("weekly cron fields wrong: %v", args)
	}
	if !strings.HasPrefix(args["name"].(string), "/usr/local/bin/taskware-biweekly-") {
		t.Errorf("cron should invoke the wrapper, got name %v", args["name"])
	}

	wrapper := flattenArgs(t, state[wrapperID]["file.managed"])
	contents, _ := wrapper["contents"].(string)
	if !strings.Contains(contents, `ANCHOR="2025-06-01"`) {
		t.Errorf("wrapper missing persisted anchor:\n%s", contents)
	}
	if !strings.Contains(contents, "exec echo hi") || !strings.Contains(contents, "exit 0") {
		t.Errorf("wrapper must exec on the on-week and no-op otherwise:\n%s", contents)
	}
}

func TestSaltBiweeklyFieldsMatchWeekly(t *testing.T) {
	t.Parallel()
	bi := testJob(t, "every other tuesday at noon")
	plain := testJob(t, "every tuesday at noon")
	if bi.Schedule.Cron() != plain.Schedule.Cron() {
		t.Fatalf("cron fields differ: biweekly %q vs weekly %q",
			bi.Schedule.Cron(), plain.Schedule.Cron())
	}
}

func TestSaltDeterministic(t *testing.T) {
	t.Parallel()
	j := testJob(t, "every other tuesday at noon")
	a, err := Salt(j)
	if err != nil {
		t.Fatalf("Salt: %v", err)
	}
	b, err := Salt(j)
	if err != nil {
		t.Fatalf("Salt: %v", err)
	}
	if a[0].Body != b[0].Body {
		t.Fatal("Salt output is not deterministic")
	}
}

func flattenArgs(t *testing.T, pairs []map[string]any) map[string]any {
	t.Helper()
	out := map[string]any{}
	for _, p := range pairs {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}
