package cli

import (
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored jobs with their next fire time",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	jobs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		cmd.Println("no jobs")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmtRow(w, "ID", "ON", "SCHEDULE", "CRON", "NEXT", "COMMAND")
	for _, j := range jobs {
		next := "-"
		if j.Enabled {
			if times, err := nextRuns(j.Schedule.Cron(), now, 1); err == nil && len(times) > 0 {
				next = times[0].Format("Mon 15:04")
			}
		}
		fmtRow(w, shortID(j.ID), fmtEnabled(j.Enabled), j.Schedule.Describe(), j.Schedule.Cron(), next, j.Command)
	}
	return nil
}

func fmtRow(w *tabwriter.Writer, cols ...string) {
	for i, c := range cols {
		if i > 0 {
			w.Write([]byte("\t"))
		}
		w.Write([]byte(c))
	}
	w.Write([]byte("\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fmtEnabled(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}
