package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"taskware/internal/job"
	"taskware/internal/schedule"
	"taskware/pkg/logx"
)

var (
	addText        string
	addCron        string
	addCommand     string
	addDescription string
	addUser        string
	addAnchor      string
	addOneTimeAt   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a job from a phrase or a cron expression",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addText, "text", "", `schedule phrase, e.g. "every other tuesday at noon"`)
	addCmd.Flags().StringVar(&addCron, "cron", "", `cron expression, e.g. "*/15 9-17 * * *"`)
	addCmd.Flags().StringVarP(&addCommand, "command", "c", "", "command to run")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "free-form description")
	addCmd.Flags().StringVar(&addUser, "user", "", "run as this user (default: export.user from config)")
	addCmd.Flags().StringVar(&addAnchor, "anchor", "", "biweekly week-0 date, YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&addOneTimeAt, "one-time-at", "", "run once at YYYY-MM-DDTHH:MM, then clean up")
	_ = addCmd.MarkFlagRequired("command")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if (addText == "") == (addCron == "") {
		return errors.New("exactly one of --text or --cron is required")
	}

	var s schedule.Schedule
	if addText != "" {
		s = schedule.Parse(addText)
		if s.Kind == schedule.KindUnparsed {
			// The job is still created: the phrase stays editable and the
			// cron fields fall back to the placeholder, exactly like an
			// unrecognized edit in a structured UI.
			cmd.Printf("warning: %q was not recognized; stored as free text\n", addText)
		}
	} else {
		s = schedule.FromCron(addCron)
		if s.Kind == schedule.KindUnparsed {
			cmd.Printf("warning: %q matches no known schedule shape; stored verbatim\n", addCron)
		}
	}

	j := job.New(addCommand, s, time.Now())
	j.Description = addDescription
	j.User = addUser
	if j.User == "" {
		j.User = cfg.Export.User
	}
	if addAnchor != "" {
		j.BiweeklyAnchor = addAnchor
	}
	j.OneTimeAt = addOneTimeAt
	if err := j.Validate(); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(cmd.Context(), j); err != nil {
		return err
	}
	log.Info("job created",
		logx.String("id", j.ID),
		logx.String("cron", j.Schedule.Cron()),
		logx.Bool("biweekly", j.Schedule.Biweekly))

	cmd.Printf("created %s\n", j.ID)
	cmd.Printf("schedule: %s\n", j.Schedule.Describe())
	cmd.Printf("cron:     %s\n", j.Schedule.Cron())
	if j.Schedule.Biweekly {
		cmd.Printf("anchor:   %s (week 0)\n", j.BiweeklyAnchor)
	}
	return nil
}
