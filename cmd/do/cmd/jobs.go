package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/footprint/internal/app"
	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/jobs"
	"github.com/templui/footprint/internal/logger"
)

func JobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run background maintenance jobs by hand",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run <name>",
		Short: "Run one job now, outside its schedule",
		ValidArgs: []string{
			jobs.ResetStreaks,
			jobs.CleanupTokens,
			jobs.PurgeNotifications,
			jobs.CompleteGoals,
			jobs.WeeklyDigest,
		},
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(args[0])
		},
	})

	return cmd
}

func runJob(name string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flush := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	defer flush()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	n, err := a.Scheduler.RunNow(name)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d affected\n", name, n)
	return nil
}
