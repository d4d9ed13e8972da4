package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskware/internal/export"
	"taskware/internal/job"
	"taskware/pkg/logx"
)

var (
	exportOut    string
	exportFormat string
	exportWatch  bool
)

var exportCmd = &cobra.Command{
	Use:   "export [job id...]",
	Short: "Write scheduler artifacts for jobs (all jobs when no ids given)",
	Long: `export renders each job into files for the chosen scheduler:

  salt     Salt SLS states using cron.present (plus a gated wrapper
           for biweekly jobs)
  crontab  crontab lines with taskware marker comments, one .cron
           file plus a run wrapper per job
  systemd  a .service and .timer unit pair per job

Files are written under --out; nothing is installed.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default: export.dir from config)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "salt, crontab or systemd (default: export.format from config)")
	exportCmd.Flags().BoolVarP(&exportWatch, "watch", "w", false, "keep running and regenerate when the job store changes")
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir := exportOut
	if outDir == "" {
		outDir = cfg.Export.Dir
	}
	format := export.Format(exportFormat)
	if exportFormat == "" {
		format = export.Format(cfg.Export.Format)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	selected := func(ctx context.Context) ([]job.Job, error) {
		if len(args) == 0 {
			return st.List(ctx)
		}
		jobs := make([]job.Job, 0, len(args))
		for _, ref := range args {
			j, err := resolveJob(ctx, st, ref)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, j)
		}
		return jobs, nil
	}

	regen := func(ctx context.Context) error {
		jobs, err := selected(ctx)
		if err != nil {
			return err
		}
		n, err := writeArtifacts(outDir, format, jobs)
		if err != nil {
			return err
		}
		log.Info("artifacts written",
			logx.String("dir", outDir),
			logx.String("format", string(format)),
			logx.Int("jobs", len(jobs)),
			logx.Int("files", n))
		return nil
	}

	if err := regen(cmd.Context()); err != nil {
		return err
	}
	if !exportWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("watching %s, ctrl-c to stop\n", cfg.Storage.Path)
	return export.Watch(ctx, log, []string{filepath.Dir(cfg.Storage.Path)}, 2*time.Second, regen)
}

func writeArtifacts(dir string, format export.Format, jobs []job.Job) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	written := 0
	for _, j := range jobs {
		files, err := export.Generate(j, format)
		if err != nil {
			return written, fmt.Errorf("job %s: %w", shortID(j.ID), err)
		}
		for _, f := range files {
			path := filepath.Join(dir, f.Name)
			if err := os.WriteFile(path, []byte(f.Body), f.Mode); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}
