package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/metrics"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/repository"
)

// PredictPipeline scores individual games with the latest trained artifacts
type PredictPipeline struct {
	repos  *repository.Repositories
	cfg    *config.Config
	logger *logrus.Logger
}

// NewPredictPipeline creates a prediction pipeline
func NewPredictPipeline(repos *repository.Repositories, cfg *config.Config, logger *logrus.Logger) (*PredictPipeline, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &PredictPipeline{repos: repos, cfg: cfg, logger: logger}, nil
}

// Predict scores one game on one market and persists the prediction. History
// comes from the year preceding the game so rolling features are populated.
func (p *PredictPipeline) Predict(ctx context.Context, gameID uuid.UUID, market models.Market) (*models.Prediction, error) {
	game, err := p.repos.Game.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	historyStart := game.Date.AddDate(-historyLookbackYears, 0, 0)
	games, err := p.repos.Game.GetBySportAndDateRange(ctx, game.Sport, historyStart, game.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	engine := features.NewEngine(game.Sport, games, p.logger)

	predictor, err := loadPredictor(ctx, p.repos, p.cfg, engine, game.Sport, market, p.logger)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	prediction, err := predictor.Predict(game)
	if err != nil {
		return nil, err
	}

	if err := p.repos.Prediction.Insert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to persist prediction: %w", err)
	}

	metrics.PredictionsTotal.WithLabelValues(
		string(game.Sport), string(market), strconv.FormatBool(prediction.Calibrated),
	).Inc()

	p.logger.WithFields(logrus.Fields{
		"game_id":     gameID,
		"market":      market,
		"probability": prediction.Probability,
		"elapsed":     time.Since(started).Round(time.Millisecond),
	}).Info("Prediction stored")

	return prediction, nil
}
