package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/pipeline"
)

var backtestSport string

func init() {
	backtestCmd.Flags().StringVarP(&backtestSport, "sport", "s", "", "Sport to backtest (ncaam, nba, nhl)")
	backtestCmd.MarkFlagRequired("sport")
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the configured window against the latest artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := models.ParseSport(backtestSport)
		if err != nil {
			return err
		}

		bt, err := pipeline.NewBacktestPipeline(repos, cfg, os.Stdout, appLog)
		if err != nil {
			return err
		}

		results, err := bt.Run(cmd.Context(), sport)
		if err != nil {
			return err
		}

		// Non-zero exit when any market failed the gate, for CI use
		for _, result := range results {
			if !result.ProductionReady {
				os.Exit(1)
			}
		}
		return nil
	},
}
