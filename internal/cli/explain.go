package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"taskware/internal/schedule"
)

var explainJSON bool

var explainCmd = &cobra.Command{
	Use:   "explain <cron expression>",
	Short: "Classify a cron expression back into a schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "print the structured schedule as JSON")
}

func runExplain(cmd *cobra.Command, args []string) error {
	s := schedule.FromCron(strings.Join(args, " "))
	return printSchedule(cmd, s, explainJSON)
}
