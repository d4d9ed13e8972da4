package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskware/internal/job"
	"taskware/internal/storage"
	"taskware/pkg/logx"
)

var enableCmd = &cobra.Command{
	Use:   "enable <job id>",
	Short: "Enable a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <job id>",
	Short: "Disable a job without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args[0], false)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <job id>",
	Short: "Delete a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func setEnabled(cmd *cobra.Command, ref string, enabled bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	j, err := resolveJob(cmd.Context(), st, ref)
	if err != nil {
		return err
	}
	if err := st.SetEnabled(cmd.Context(), j.ID, enabled); err != nil {
		return err
	}
	log.Info("job toggled", logx.String("id", j.ID), logx.Bool("enabled", enabled))
	cmd.Printf("%s: enabled=%s\n", shortID(j.ID), fmtEnabled(enabled))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	j, err := resolveJob(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(cmd.Context(), j.ID); err != nil {
		return err
	}
	log.Info("job deleted", logx.String("id", j.ID))
	cmd.Printf("deleted %s\n", shortID(j.ID))
	return nil
}

// resolveJob accepts a full id or any unambiguous prefix of one.
func resolveJob(ctx context.Context, st *storage.Store, ref string) (job.Job, error) {
	if j, err := st.Get(ctx, ref); err == nil {
		return j, nil
	}
	jobs, err := st.List(ctx)
	if err != nil {
		return job.Job{}, err
	}
	var found []job.Job
	for _, j := range jobs {
		if strings.HasPrefix(j.ID, ref) {
			found = append(found, j)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return job.Job{}, fmt.Errorf("no job matches %q", ref)
	default:
		return job.Job{}, fmt.Errorf("%q matches %d jobs, use a longer prefix", ref, len(found))
	}
}
