package training

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/models"
)

// Config holds the hyperparameters shared by both trainer variants. The
// three example floors override the package defaults when positive.
type Config struct {
	Iterations        int
	LearningRate      float64
	Lambda            float64
	HalfLifeDays      float64
	TrainFraction     float64
	SigmaFloor        float64
	MinExamples       int
	MinTotalExamples  int
	MinSpreadExamples int
}

// DefaultConfig mirrors the production training defaults
func DefaultConfig() Config {
	return Config{
		Iterations:        500,
		LearningRate:      0.05,
		Lambda:            0.01,
		HalfLifeDays:      DefaultHalfLifeDays,
		TrainFraction:     DefaultTrainFraction,
		SigmaFloor:        6.0,
		MinExamples:       MinBasicExamples,
		MinTotalExamples:  MinTotalExamples,
		MinSpreadExamples: MinSpreadExamples,
	}
}

// Trainer fits one model artifact per (market, variant) from materialized
// game records. Stateless across runs; every method is a pure function of
// its inputs.
type Trainer struct {
	engine *features.Engine
	cfg    Config
	logger *logrus.Logger
}

// NewTrainer creates a trainer over an indexed feature engine
func NewTrainer(engine *features.Engine, cfg Config, logger *logrus.Logger) *Trainer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Trainer{engine: engine, cfg: cfg, logger: logger}
}

// Result carries the fitted artifact and its validation predictions, which
// the caller feeds to calibration
type Result struct {
	Artifact       *models.ModelArtifact
	ValPredictions []ValPrediction
}

// TrainMarket fits one artifact for the given market and variant over the
// supplied games. Games with incomplete odds for the market, or with either
// side short of the per-sport history floor, are excluded quietly. Returns
// ErrInsufficientData when fewer examples remain than the market's floor.
func (t *Trainer) TrainMarket(runID uuid.UUID, market models.Market, variant models.ModelVariant, underdog bool, games []*models.GameRecord, seasons []int) (*Result, error) {
	spec := features.ModelSpec(market, variant == models.VariantMarketAware, underdog)

	examples, err := t.buildExamples(market, spec, variant == models.VariantMarketAware, games)
	if err != nil {
		return nil, err
	}
	if floor := t.minExamplesFor(market); len(examples) < floor {
		t.logger.WithFields(logrus.Fields{
			"market":   market,
			"variant":  variant,
			"examples": len(examples),
			"needed":   floor,
		}).Warn("Skipping training, not enough examples")
		return nil, fmt.Errorf("market %s: %d examples: %w", market, len(examples), models.ErrInsufficientData)
	}

	train, validation := TemporalSplit(examples, t.cfg.TrainFraction)

	weightCfg := WeightConfig{
		HalfLifeDays:   t.cfg.HalfLifeDays,
		BalanceClasses: market != models.MarketTotal,
	}
	sampleWeights := ComputeSampleWeights(train, weightCfg)
	totalMass := 0.0
	for _, w := range sampleWeights {
		totalMass += w
	}

	artifact := &models.ModelArtifact{
		ID:           uuid.New(),
		RunID:        runID,
		Sport:        t.engine.Sport(),
		Market:       market,
		Variant:      variant,
		Underdog:     underdog,
		FeatureNames: spec.Names(),
		Seasons:      seasons,
		TrainedAt:    time.Now().UTC(),
	}

	var valPreds []ValPrediction
	if market == models.MarketTotal {
		model, err := TrainRidge(train, sampleWeights, spec.Names(), RidgeConfig{
			Iterations:   t.cfg.Iterations,
			LearningRate: t.cfg.LearningRate,
			Lambda:       t.cfg.Lambda,
			SigmaFloor:   t.cfg.SigmaFloor,
		})
		if err != nil {
			return nil, fmt.Errorf("ridge training failed: %w", err)
		}
		artifact.ModelType = models.ModelTypeRidge
		artifact.Weights = model.Weights
		artifact.Scaler = &model.Scaler
		artifact.Bias = model.Bias
		artifact.Sigma = model.Sigma

		predictions := make([]float64, len(validation))
		targets := make([]float64, len(validation))
		valPreds = make([]ValPrediction, len(validation))
		for i, ex := range validation {
			predictions[i] = model.Predict(ex.Features)
			targets[i] = ex.Label
			over := 0.0
			if ex.Label > ex.Line {
				over = 1.0
			}
			valPreds[i] = ValPrediction{Prob: model.ProbOver(ex.Features, ex.Line), Label: over}
		}
		artifact.Validation = RegressionMetrics(predictions, targets)
	} else {
		model, err := TrainLogistic(train, sampleWeights, spec.Names(), LogisticConfig{
			Iterations:   t.cfg.Iterations,
			LearningRate: t.cfg.LearningRate,
			Lambda:       t.cfg.Lambda,
		})
		if err != nil {
			return nil, fmt.Errorf("logistic training failed: %w", err)
		}
		artifact.ModelType = models.ModelTypeLogistic
		artifact.Weights = model.Weights

		valPreds = make([]ValPrediction, len(validation))
		for i, ex := range validation {
			valPreds[i] = ValPrediction{Prob: model.Predict(ex.Features), Label: ex.Label}
		}
		artifact.Validation = ClassificationMetrics(valPreds)
	}

	artifact.Validation.TrainSize = len(train)
	artifact.Validation.TotalMass = totalMass

	t.logger.WithFields(logrus.Fields{
		"market":     market,
		"variant":    variant,
		"train":      len(train),
		"validation": len(validation),
		"accuracy":   artifact.Validation.Accuracy,
	}).Info("Trained model artifact")

	return &Result{Artifact: artifact, ValPredictions: valPreds}, nil
}

// minExamplesFor returns the configured floor for a market, falling back to
// the package default when the config leaves it unset
func (t *Trainer) minExamplesFor(market models.Market) int {
	configured := 0
	switch market {
	case models.MarketTotal:
		configured = t.cfg.MinTotalExamples
	case models.MarketSpread:
		configured = t.cfg.MinSpreadExamples
	default:
		configured = t.cfg.MinExamples
	}
	if configured > 0 {
		return configured
	}
	return MinExamplesFor(market)
}

// buildExamples walks the settled games, skipping incomplete odds and short
// histories; one malformed record never aborts the batch
func (t *Trainer) buildExamples(market models.Market, spec features.Spec, includeMarket bool, games []*models.GameRecord) ([]Example, error) {
	examples := make([]Example, 0, len(games))
	skippedOdds, skippedHistory := 0, 0

	for _, game := range games {
		if !game.IsSettled() {
			continue
		}
		if !game.Odds.HasMarket(market) {
			skippedOdds++
			continue
		}
		if !t.engine.HasMinimumHistory(game) {
			skippedHistory++
			continue
		}

		vector, err := t.engine.Build(game, spec, includeMarket)
		if err != nil {
			t.logger.WithError(err).WithField("game_id", game.ID).Warn("Failed to build features, skipping game")
			continue
		}

		ex := Example{
			GameID:   game.ID,
			Date:     game.Date,
			Season:   game.Season,
			Features: vector.Values,
		}
		switch market {
		case models.MarketMoneyline:
			if game.HomeWon() {
				ex.Label = 1.0
			}
		case models.MarketSpread:
			if game.Margin()+*game.Odds.Spread > 0 {
				ex.Label = 1.0
			}
		case models.MarketTotal:
			ex.Label = game.TotalPoints()
			ex.Line = *game.Odds.Total
		}
		if game.Odds.HasMoneyline() {
			home, away := marketImplied(game)
			if home < away {
				ex.Tier = models.ClassifyUnderdogTier(home)
			} else {
				ex.Tier = models.ClassifyUnderdogTier(away)
			}
		}
		examples = append(examples, ex)
	}

	if skippedOdds > 0 || skippedHistory > 0 {
		t.logger.WithFields(logrus.Fields{
			"market":          market,
			"skipped_odds":    skippedOdds,
			"skipped_history": skippedHistory,
			"kept":            len(examples),
		}).Debug("Example construction complete")
	}
	return examples, nil
}

func marketImplied(game *models.GameRecord) (float64, float64) {
	mc := features.NewMarketContext(game.Odds, 0, 0)
	return mc.HomeImplied, mc.AwayImplied
}
