package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"taskware/internal/job"
	"taskware/internal/schedule"
	"taskware/pkg/logx"
)

var ErrNotFound = errors.New("job not found")

// Config configures the job store.
type Config struct {
	Path        string
	BusyTimeout time.Duration // 0 means default
}

//go:embed migrations.sql
var migrationsFS embed.FS

type Store struct {
	db  *sql.DB
	log logx.Logger
}

// Open opens (creating if needed) the SQLite job database at cfg.Path.
func Open(cfg Config, log logx.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &Store{db: db, log: log}

	// Basic pragmas.
	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *Store) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put inserts or replaces a job.
func (s *Store) Put(ctx context.Context, j job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs(id, command, cron, raw, description, user, enabled, biweekly, anchor, one_time_at, created_at, updated_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET
		   command=excluded.command, cron=excluded.cron, raw=excluded.raw,
		   description=excluded.description, user=excluded.user,
		   enabled=excluded.enabled, biweekly=excluded.biweekly,
		   anchor=excluded.anchor, one_time_at=excluded.one_time_at,
		   updated_at=excluded.updated_at`,
		j.ID, j.Command, j.Schedule.Cron(), j.Schedule.Raw, j.Description, j.User,
		boolInt(j.Enabled), boolInt(j.Schedule.Biweekly), j.BiweeklyAnchor, j.OneTimeAt,
		j.CreatedAt.Format(time.RFC3339Nano), j.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

const jobColumns = `id, command, cron, raw, description, user, enabled, biweekly, anchor, one_time_at, created_at, updated_at`

func (s *Store) Get(ctx context.Context, id string) (job.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return job.Job{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return j, err
}

func (s *Store) List(ctx context.Context) ([]job.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return oneRow(res, id)
}

func (s *Store) SetEnabled(ctx context.Context, id string, enabled bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET enabled = ?, updated_at = ? WHERE id = ?`,
		boolInt(enabled), time.Now().Format(time.RFC3339Nano), id)
	if err != nil {
		return err
	}
	return oneRow(res, id)
}

func oneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (job.Job, error) {
	var (
		j                    job.Job
		cron, raw            string
		enabled, biweekly    int
		createdAt, updatedAt string
	)
	if err := r.Scan(&j.ID, &j.Command, &cron, &raw, &j.Description, &j.User,
		&enabled, &biweekly, &j.BiweeklyAnchor, &j.OneTimeAt, &createdAt, &updatedAt); err != nil {
		return job.Job{}, err
	}
	j.Enabled = enabled != 0
	j.Schedule = rebuildSchedule(cron, raw, biweekly != 0)
	j.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	j.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return j, nil
}

// rebuildSchedule reconstructs the canonical Schedule from its persisted
// forms. Unparsed input is kept verbatim; the biweekly flag lives outside the
// cron fields and is re-applied here.
func rebuildSchedule(cron, raw string, biweekly bool) schedule.Schedule {
	if raw != "" {
		return schedule.Schedule{Kind: schedule.KindUnparsed, Raw: raw}
	}
	s := schedule.FromCron(cron)
	if s.Kind == schedule.KindWeekly {
		s.Biweekly = biweekly
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
