// Package cli wires the schedule engine, job store and exporters into the
// taskware command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskware/internal/config"
	"taskware/internal/storage"
	"taskware/pkg/logx"
)

var (
	cfgPath string
	cfg     config.Config
	log     logx.Logger

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "taskware",
	Short: "Schedule jobs in plain English, cron, or both",
	Long: `taskware translates between free-text schedule phrases
("every other tuesday at noon"), a structured schedule, and cron
expressions, and exports jobs as Salt states, crontab lines, or
systemd timer units. Artifacts are generated, never installed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		log, logCloser, err = logx.New(logx.Config{
			Level:   cfg.Logging.Level,
			Console: cfg.Logging.Console,
			File:    logx.FileConfig{Enabled: cfg.Logging.File != "", Path: cfg.Logging.File},
		})
		return err
	},
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to config yaml")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(exportCmd)
}

func openStore() (*storage.Store, error) {
	busy, err := config.ParseDurationOrDefault("storage.busy_timeout", cfg.Storage.BusyTimeout, 5*time.Second)
	if err != nil {
		return nil, err
	}
	return storage.Open(storage.Config{Path: cfg.Storage.Path, BusyTimeout: busy}, log)
}
