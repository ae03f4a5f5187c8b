package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/pipeline"
)

var (
	trainSport   string
	trainSeasons string
)

func init() {
	trainCmd.Flags().StringVarP(&trainSport, "sport", "s", "", "Sport to train (ncaam, nba, nhl)")
	trainCmd.Flags().StringVar(&trainSeasons, "seasons", "", "Comma-separated season years, e.g. 2023,2024,2025")
	trainCmd.MarkFlagRequired("sport")
	trainCmd.MarkFlagRequired("seasons")
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train model artifacts for every configured market",
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := models.ParseSport(trainSport)
		if err != nil {
			return err
		}
		seasons, err := parseSeasons(trainSeasons)
		if err != nil {
			return err
		}

		train, err := pipeline.NewTrainPipeline(repos, cfg, appLog)
		if err != nil {
			return err
		}

		runID, err := train.Run(cmd.Context(), sport, seasons)
		if err != nil {
			return err
		}

		fmt.Printf("training run %s complete\n", runID)
		return nil
	},
}

func parseSeasons(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	seasons := make([]int, 0, len(parts))
	for _, part := range parts {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", part, err)
		}
		seasons = append(seasons, year)
	}
	if len(seasons) == 0 {
		return nil, fmt.Errorf("at least one season is required")
	}
	return seasons, nil
}
