package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"taskware/internal/schedule"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <phrase>",
	Short: "Convert a schedule phrase to a cron expression",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the structured schedule as JSON")
}

// scheduleView is the JSON shape shared by parse and explain.
type scheduleView struct {
	Kind        string   `json:"kind"`
	Cron        string   `json:"cron"`
	Description string   `json:"description"`
	Every       int      `json:"every_minutes,omitempty"`
	Minute      int      `json:"minute,omitempty"`
	At          string   `json:"at,omitempty"`
	Days        []string `json:"days,omitempty"`
	Biweekly    bool     `json:"biweekly,omitempty"`
	WindowStart string   `json:"window_start,omitempty"`
	WindowEnd   string   `json:"window_end,omitempty"`
	Raw         string   `json:"raw,omitempty"`
}

func viewOf(s schedule.Schedule) scheduleView {
	v := scheduleView{
		Kind:        s.Kind.String(),
		Cron:        s.Cron(),
		Description: s.Describe(),
		Biweekly:    s.Biweekly,
		Raw:         s.Raw,
	}
	switch s.Kind {
	case schedule.KindEveryNMinutes:
		v.Every = s.Every
	case schedule.KindHourly:
		v.Minute = s.Minute
	case schedule.KindDaily, schedule.KindWeekly:
		v.At = s.At.String()
	}
	for _, d := range s.Days.Days() {
		v.Days = append(v.Days, d.String())
	}
	if s.Window != nil {
		v.WindowStart = s.Window.Start.String()
		v.WindowEnd = s.Window.End.String()
	}
	return v
}

func printSchedule(cmd *cobra.Command, s schedule.Schedule, asJSON bool) error {
	if asJSON {
		b, err := json.MarshalIndent(viewOf(s), "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(b))
		return nil
	}
	if s.Kind == schedule.KindUnparsed {
		cmd.Printf("unrecognized: %q\n", s.Raw)
		cmd.Println("the text is kept as-is; edit it or enter a cron expression directly")
		return nil
	}
	cmd.Printf("schedule: %s\n", s.Describe())
	cmd.Printf("cron:     %s\n", s.Cron())
	if s.Biweekly {
		cmd.Println("note:     biweekly runs need the exported wrapper; plain cron fires every week")
	}
	if s.Window != nil && s.Kind != schedule.KindEveryNMinutes {
		cmd.Println("note:     the time window is kept but not representable in cron for this frequency")
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	s := schedule.Parse(strings.Join(args, " "))
	return printSchedule(cmd, s, parseJSON)
}
