package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/ensemble"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/repository"
)

// loadPredictor resolves the latest artifacts for a market into a predictor.
// The base artifact is required; the market-aware member is optional. On
// moneyline the underdog-focused pair is attached when one has been trained,
// so underdog games score with their dedicated models.
func loadPredictor(ctx context.Context, repos *repository.Repositories, cfg *config.Config, engine *features.Engine, sport models.Sport, market models.Market, logger *logrus.Logger) (*ensemble.Predictor, error) {
	base, err := repos.Artifact.GetLatest(ctx, sport, market, models.VariantBase, false)
	if err != nil {
		return nil, err
	}

	marketAware, err := repos.Artifact.GetLatest(ctx, sport, market, models.VariantMarketAware, false)
	if err != nil {
		if !errors.Is(err, models.ErrMissingArtifact) {
			return nil, err
		}
		logger.WithField("market", market).Warn("No market-aware artifact, using base model alone")
		marketAware = nil
	}

	baseW, marketW := cfg.BlendWeights(false)
	dogBaseW, dogMarketW := cfg.BlendWeights(true)
	blender, err := ensemble.NewBlender(baseW, marketW, dogBaseW, dogMarketW)
	if err != nil {
		return nil, err
	}

	predictor, err := ensemble.NewPredictor(engine, base, marketAware, blender, logger)
	if err != nil {
		return nil, err
	}

	if market == models.MarketMoneyline {
		if err := attachUnderdogModels(ctx, repos, predictor, sport, market, logger); err != nil {
			return nil, err
		}
	}

	return predictor, nil
}

func attachUnderdogModels(ctx context.Context, repos *repository.Repositories, predictor *ensemble.Predictor, sport models.Sport, market models.Market, logger *logrus.Logger) error {
	dogBase, err := repos.Artifact.GetLatest(ctx, sport, market, models.VariantBase, true)
	if err != nil {
		if errors.Is(err, models.ErrMissingArtifact) {
			logger.WithField("market", market).Warn("No underdog artifacts, standard pair covers underdog games")
			return nil
		}
		return err
	}

	dogMarket, err := repos.Artifact.GetLatest(ctx, sport, market, models.VariantMarketAware, true)
	if err != nil {
		if !errors.Is(err, models.ErrMissingArtifact) {
			return err
		}
		dogMarket = nil
	}

	if err := predictor.AttachUnderdogModels(dogBase, dogMarket); err != nil {
		return fmt.Errorf("attaching underdog artifacts: %w", err)
	}
	return nil
}
