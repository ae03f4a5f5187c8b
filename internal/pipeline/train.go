// Package pipeline wires repositories, feature building, training,
// calibration, and replay into the top-level operations the CLI exposes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/calibration"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/ensemble"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/metrics"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/repository"
	"github.com/yourusername/sharpline/internal/training"
)

// TrainPipeline runs a full training pass: one base and one market-aware
// artifact per configured market, with an isotonic curve fitted on the
// blended validation predictions and stored on the base artifact.
type TrainPipeline struct {
	repos  *repository.Repositories
	cfg    *config.Config
	logger *logrus.Logger
}

// NewTrainPipeline creates a training pipeline
func NewTrainPipeline(repos *repository.Repositories, cfg *config.Config, logger *logrus.Logger) (*TrainPipeline, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &TrainPipeline{repos: repos, cfg: cfg, logger: logger}, nil
}

// Run trains every configured market over the given seasons and returns the
// run ID shared by the persisted artifacts. Markets short on data are skipped
// with a warning; the run fails only when every market is skipped.
func (p *TrainPipeline) Run(ctx context.Context, sport models.Sport, seasons []int) (uuid.UUID, error) {
	started := time.Now()
	runID := uuid.New()

	games, err := p.repos.Game.GetBySportAndSeasons(ctx, sport, seasons)
	if err != nil {
		metrics.ObserveTrainingRun(string(sport), "error", time.Since(started))
		return uuid.Nil, fmt.Errorf("failed to load games: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"sport":   sport,
		"seasons": seasons,
		"games":   len(games),
	}).Info("Starting training run")

	engine := features.NewEngine(sport, games, p.logger)
	trainer := training.NewTrainer(engine, training.Config{
		Iterations:        p.cfg.Training.Iterations,
		LearningRate:      p.cfg.Training.LearningRate,
		Lambda:            p.cfg.Training.Lambda,
		HalfLifeDays:      p.cfg.Training.HalfLifeDays,
		TrainFraction:     p.cfg.Training.TrainSplit,
		SigmaFloor:        p.cfg.Training.SigmaFloor,
		MinExamples:       p.cfg.Training.MinExamples,
		MinTotalExamples:  p.cfg.Training.MinTotalExamples,
		MinSpreadExamples: p.cfg.Training.MinSpreadExamples,
	}, p.logger)

	trained := 0
	for _, raw := range p.cfg.Training.Markets {
		market, err := models.ParseMarket(raw)
		if err != nil {
			metrics.ObserveTrainingRun(string(sport), "error", time.Since(started))
			return uuid.Nil, err
		}

		if err := p.trainMarket(ctx, trainer, runID, market, false, games, seasons); err != nil {
			if errors.Is(err, models.ErrInsufficientData) {
				p.logger.WithError(err).WithField("market", market).Warn("Skipping market")
				continue
			}
			metrics.ObserveTrainingRun(string(sport), "error", time.Since(started))
			return uuid.Nil, err
		}
		trained++

		// An underdog-focused moneyline pair trains alongside the standard one
		if market == models.MarketMoneyline {
			if err := p.trainMarket(ctx, trainer, runID, market, true, games, seasons); err != nil {
				if errors.Is(err, models.ErrInsufficientData) {
					p.logger.WithError(err).Warn("Skipping underdog models")
				} else {
					metrics.ObserveTrainingRun(string(sport), "error", time.Since(started))
					return uuid.Nil, err
				}
			}
		}
	}

	if trained == 0 {
		metrics.ObserveTrainingRun(string(sport), "skipped", time.Since(started))
		return uuid.Nil, fmt.Errorf("no market had enough data: %w", models.ErrInsufficientData)
	}

	metrics.ObserveTrainingRun(string(sport), "success", time.Since(started))
	p.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"markets": trained,
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Info("Training run complete")

	return runID, nil
}

// trainMarket fits the base and market-aware pair for one market, calibrates
// their blend, and persists both artifacts
func (p *TrainPipeline) trainMarket(ctx context.Context, trainer *training.Trainer, runID uuid.UUID, market models.Market, underdog bool, games []*models.GameRecord, seasons []int) error {
	base, err := trainer.TrainMarket(runID, market, models.VariantBase, underdog, games, seasons)
	if err != nil {
		return err
	}

	marketAware, err := trainer.TrainMarket(runID, market, models.VariantMarketAware, underdog, games, seasons)
	if err != nil {
		return err
	}

	curve, err := p.calibrateBlend(base.ValPredictions, marketAware.ValPredictions, underdog)
	if err != nil {
		return err
	}
	base.Artifact.Calibration = curve
	if curve.Skipped {
		metrics.CalibrationSkipsTotal.Inc()
	}

	metrics.GamesFeaturizedTotal.WithLabelValues(string(base.Artifact.Sport), string(market)).
		Add(float64(base.Artifact.Validation.TrainSize + base.Artifact.Validation.Examples))

	if err := p.repos.Artifact.Create(ctx, base.Artifact); err != nil {
		return fmt.Errorf("failed to persist base artifact: %w", err)
	}
	if err := p.repos.Artifact.Create(ctx, marketAware.Artifact); err != nil {
		return fmt.Errorf("failed to persist market artifact: %w", err)
	}

	return nil
}

// calibrateBlend fits the isotonic curve on the blended validation
// predictions. Both variants filter and split the same example set, so the
// two slices are aligned one-to-one.
func (p *TrainPipeline) calibrateBlend(basePreds, marketPreds []training.ValPrediction, underdog bool) (*models.CalibrationCurve, error) {
	if p.cfg.Calibration.Method == "none" {
		return &models.CalibrationCurve{Skipped: true, Method: "none"}, nil
	}

	baseW, marketW := p.cfg.BlendWeights(underdog)
	blender, err := ensemble.NewBlender(baseW, marketW, baseW, marketW)
	if err != nil {
		return nil, err
	}

	points := make([]calibration.Point, 0, len(basePreds))
	for i, bp := range basePreds {
		prob := bp.Prob
		if i < len(marketPreds) {
			prob = blender.Blend(bp.Prob, &marketPreds[i].Prob, false)
		}
		points = append(points, calibration.Point{Prob: prob, Label: bp.Label})
	}

	return calibration.Fit(points, calibration.Config{
		Method:     p.cfg.Calibration.Method,
		MinSamples: p.cfg.Calibration.MinSamples,
	}, p.logger)
}
