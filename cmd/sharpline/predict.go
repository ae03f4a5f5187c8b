package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/pipeline"
)

var (
	predictGameID string
	predictMarket string
)

func init() {
	predictCmd.Flags().StringVarP(&predictGameID, "game", "g", "", "Game ID to score")
	predictCmd.Flags().StringVarP(&predictMarket, "market", "m", "moneyline", "Market to score (moneyline, spread, total)")
	predictCmd.MarkFlagRequired("game")
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one game with the latest trained artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := uuid.Parse(predictGameID)
		if err != nil {
			return fmt.Errorf("invalid game ID: %w", err)
		}
		market, err := models.ParseMarket(predictMarket)
		if err != nil {
			return err
		}

		predict, err := pipeline.NewPredictPipeline(repos, cfg, appLog)
		if err != nil {
			return err
		}

		prediction, err := predict.Predict(cmd.Context(), gameID, market)
		if err != nil {
			return err
		}

		calibrated := "raw"
		if prediction.Calibrated {
			calibrated = "calibrated"
		}
		fmt.Printf("%s %s: %.1f%% (%s)\n", market, prediction.Side, prediction.Probability*100, calibrated)
		return nil
	},
}
