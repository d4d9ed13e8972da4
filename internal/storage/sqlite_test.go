package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"taskware/internal/job"
	"taskware/internal/schedule"
	"taskware/pkg/logx"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(Config{Path: filepath.Join(t.TempDir(), "jobs.db")}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	j := job.New("echo hi", schedule.Parse("every other tuesday at noon"), now)
	j.Description = "greeting"
	j.User = "alice"
	if err := st.Put(ctx, j); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := st.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Command != j.Command || got.Description != j.Description || got.User != j.User {
		t.Fatalf("Get = %+v, want %+v", got, j)
	}
	if !got.Schedule.Equal(j.Schedule) {
		t.Fatalf("schedule lost in round trip: %+v, want %+v", got.Schedule, j.Schedule)
	}
	if got.BiweeklyAnchor != "2025-06-01" {
		t.Fatalf("anchor = %q, want persisted creation date", got.BiweeklyAnchor)
	}
}

func TestUnparsedScheduleSurvivesReload(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()

	j := job.New("echo hi", schedule.Parse("whenever the mood strikes"), time.Now())
	if err := st.Put(ctx, j); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := st.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Schedule.Kind != schedule.KindUnparsed || got.Schedule.Raw != "whenever the mood strikes" {
		t.Fatalf("unparsed text corrupted: %+v", got.Schedule)
	}
}

func TestListOrderAndDelete(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		j := job.New("echo", schedule.Parse("every 5 minutes"), base.Add(time.Duration(i)*time.Hour))
		if err := st.Put(ctx, j); err != nil {
			t.Fatalf("Put: %v", err)
		}
		ids = append(ids, j.ID)
	}

	jobs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("List returned %d jobs, want 3", len(jobs))
	}
	for i, j := range jobs {
		if j.ID != ids[i] {
			t.Fatalf("List order: jobs[%d].ID = %s, want %s", i, j.ID, ids[i])
		}
	}

	if err := st.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound, got %v", err)
	}
	if err := st.Delete(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete: want ErrNotFound, got %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()

	j := job.New("echo", schedule.Parse("every minute"), time.Now())
	if err := st.Put(ctx, j); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.SetEnabled(ctx, j.ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	got, err := st.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Enabled {
		t.Fatal("job still enabled after SetEnabled(false)")
	}
	if err := st.SetEnabled(ctx, "no-such-id", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetEnabled on unknown id: want ErrNotFound, got %v", err)
	}
}
