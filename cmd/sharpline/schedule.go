package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/sharpline/internal/health"
	"github.com/yourusername/sharpline/internal/pipeline"
	"github.com/yourusername/sharpline/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the periodic retraining scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Scheduler.Enabled {
			return fmt.Errorf("scheduler is disabled in configuration")
		}

		train, err := pipeline.NewTrainPipeline(repos, cfg, appLog)
		if err != nil {
			return err
		}

		sched := scheduler.NewScheduler(train, cfg.Scheduler, appLog)
		if err := sched.ScheduleRetrain(); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		if cfg.Metrics.Enabled {
			srv := health.NewServer(health.Config{
				Version:     Version,
				Port:        cfg.Metrics.Port,
				MetricsPath: cfg.Metrics.Path,
				Logger:      appLog,
				DB:          db,
			})
			if err := srv.Start(cmd.Context()); err != nil {
				return err
			}
			srv.SetReady(true)
			defer srv.Shutdown()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		appLog.WithField("signal", sig.String()).Info("Shutting down")

		return nil
	},
}
