package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"taskware/internal/schedule"
)

var nextCount int

var nextCmd = &cobra.Command{
	Use:   "next <phrase or cron expression>",
	Short: "Show the upcoming fire times for a schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNext,
}

func init() {
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 3, "number of fire times to show")
}

func runNext(cmd *cobra.Command, args []string) error {
	in := strings.Join(args, " ")

	// Phrases and cron expressions are both fine; try the phrase parser
	// first, fall back to treating the input as a raw expression.
	s := schedule.Parse(in)
	expr := s.Cron()
	if s.Kind == schedule.KindUnparsed {
		expr = in
	}

	times, err := nextRuns(expr, time.Now(), nextCount)
	if err != nil {
		return fmt.Errorf("%q is neither a known phrase nor a valid cron expression", in)
	}
	if s.Kind != schedule.KindUnparsed {
		cmd.Printf("schedule: %s (%s)\n", s.Describe(), expr)
	} else {
		cmd.Printf("cron: %s\n", expr)
	}
	for _, ts := range times {
		cmd.Println(ts.Format("Mon 2006-01-02 15:04"))
	}
	if s.Biweekly {
		cmd.Println("(biweekly: every second listed week is skipped by the exported wrapper)")
	}
	return nil
}

func nextRuns(expr string, from time.Time, n int) ([]time.Time, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, n)
	t := from
	for i := 0; i < n; i++ {
		t = sched.Next(t)
		if t.IsZero() {
			break
		}
		out = append(out, t)
	}
	return out, nil
}
