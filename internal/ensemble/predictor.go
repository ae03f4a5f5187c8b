package ensemble

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/calibration"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/training"
)

// Sides a prediction's probability refers to
const (
	SideHome = "home"
	SideOver = "over"
)

// Predictor scores one game with the base artifact, optionally the
// market-aware artifact, blends the two, and passes the result through the
// scoring artifact's calibration curve. The market member is optional; a
// predictor built from the base artifact alone degrades to uncalibrated or
// calibrated single-model output. An underdog-focused pair may be attached;
// when present it replaces the standard pair on games where the home side is
// the market underdog.
type Predictor struct {
	engine      *features.Engine
	base        *models.ModelArtifact
	marketAware *models.ModelArtifact
	dogBase     *models.ModelArtifact
	dogMarket   *models.ModelArtifact
	blender     *Blender
	logger      *logrus.Logger
}

// NewPredictor validates that both artifacts describe the same sport and
// market before wiring them together
func NewPredictor(engine *features.Engine, base, marketAware *models.ModelArtifact, blender *Blender, logger *logrus.Logger) (*Predictor, error) {
	if engine == nil {
		return nil, fmt.Errorf("feature engine is required")
	}
	if base == nil {
		return nil, fmt.Errorf("base artifact is required")
	}
	if marketAware != nil {
		if marketAware.Sport != base.Sport || marketAware.Market != base.Market {
			return nil, fmt.Errorf("artifact mismatch: base is %s/%s, market-aware is %s/%s",
				base.Sport, base.Market, marketAware.Sport, marketAware.Market)
		}
	}
	if blender == nil {
		blender = DefaultBlender()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Predictor{
		engine:      engine,
		base:        base,
		marketAware: marketAware,
		blender:     blender,
		logger:      logger,
	}, nil
}

// AttachUnderdogModels wires an underdog-focused artifact pair. Games where
// the scored side is the market underdog are routed through this pair and its
// calibration curve instead of the standard one.
func (p *Predictor) AttachUnderdogModels(base, marketAware *models.ModelArtifact) error {
	if base == nil {
		return fmt.Errorf("underdog base artifact is required")
	}
	if !base.Underdog {
		return fmt.Errorf("artifact %s is not underdog-focused", base.ID)
	}
	if base.Sport != p.base.Sport || base.Market != p.base.Market {
		return fmt.Errorf("artifact mismatch: predictor is %s/%s, underdog base is %s/%s",
			p.base.Sport, p.base.Market, base.Sport, base.Market)
	}
	if marketAware != nil {
		if !marketAware.Underdog {
			return fmt.Errorf("artifact %s is not underdog-focused", marketAware.ID)
		}
		if marketAware.Sport != base.Sport || marketAware.Market != base.Market {
			return fmt.Errorf("artifact mismatch: underdog base is %s/%s, underdog market-aware is %s/%s",
				base.Sport, base.Market, marketAware.Sport, marketAware.Market)
		}
	}
	p.dogBase = base
	p.dogMarket = marketAware
	return nil
}

// Market returns the market this predictor scores
func (p *Predictor) Market() models.Market {
	return p.base.Market
}

// Sport returns the league the artifacts were trained for
func (p *Predictor) Sport() models.Sport {
	return p.base.Sport
}

// RunID returns the training run that produced the artifacts
func (p *Predictor) RunID() uuid.UUID {
	return p.base.RunID
}

// Calibrated reports whether predictions pass through a fitted curve
func (p *Predictor) Calibrated() bool {
	return p.base.Calibration.IsUsable()
}

// CanScore reports whether both sides of a game clear the per-sport history
// floor
func (p *Predictor) CanScore(game *models.GameRecord) bool {
	return p.engine.HasMinimumHistory(game)
}

// Predict scores one game. The probability is for the home side on
// moneyline and spread markets and for the over on totals. Totals require a
// posted line; its absence is a malformed-odds error.
func (p *Predictor) Predict(game *models.GameRecord) (*models.Prediction, error) {
	if game == nil {
		return nil, fmt.Errorf("game is required")
	}

	market := p.base.Market
	line := 0.0
	if market == models.MarketTotal {
		if game.Odds == nil || game.Odds.Total == nil {
			return nil, fmt.Errorf("game %s has no total line: %w", game.ID, models.ErrMalformedOdds)
		}
		line = *game.Odds.Total
	}

	underdogGame := p.isUnderdogGame(game, market)
	base, marketAware := p.base, p.marketAware
	if underdogGame && p.dogBase != nil {
		base, marketAware = p.dogBase, p.dogMarket
	}

	baseSpec := features.ModelSpec(market, false, base.Underdog)
	baseVec, err := p.engine.Build(game, baseSpec, false)
	if err != nil {
		return nil, fmt.Errorf("building base features: %w", err)
	}
	baseProb, err := training.ScoreArtifact(base, baseVec.Values, line)
	if err != nil {
		return nil, fmt.Errorf("scoring base artifact: %w", err)
	}

	var marketProb *float64
	if marketAware != nil && game.Odds.HasMarket(market) {
		marketSpec := features.ModelSpec(market, true, marketAware.Underdog)
		marketVec, err := p.engine.Build(game, marketSpec, true)
		if err != nil {
			return nil, fmt.Errorf("building market features: %w", err)
		}
		prob, err := training.ScoreArtifact(marketAware, marketVec.Values, line)
		if err != nil {
			return nil, fmt.Errorf("scoring market artifact: %w", err)
		}
		marketProb = &prob
	}

	blended := p.blender.Blend(baseProb, marketProb, underdogGame)

	curve := base.Calibration
	calibrated := calibration.Apply(curve, blended)

	side := SideHome
	if market == models.MarketTotal {
		side = SideOver
	}

	featureJSON, err := json.Marshal(baseVec)
	if err != nil {
		return nil, fmt.Errorf("serializing features: %w", err)
	}

	pred := &models.Prediction{
		ID:          uuid.New(),
		GameID:      game.ID,
		RunID:       p.base.RunID,
		Market:      market,
		Side:        side,
		Probability: calibrated,
		RawBase:     baseProb,
		RawMarket:   marketProb,
		Calibrated:  curve.IsUsable(),
		Features:    featureJSON,
		PredictedAt: time.Now().UTC(),
	}

	p.logger.WithFields(logrus.Fields{
		"game_id":     game.ID,
		"market":      market,
		"side":        side,
		"probability": calibrated,
		"calibrated":  pred.Calibrated,
	}).Debug("Scored game")

	return pred, nil
}

// isUnderdogGame reports whether the side the probability refers to is the
// market underdog at moderate tier or worse, which switches the blend to the
// even weight pair
func (p *Predictor) isUnderdogGame(game *models.GameRecord, market models.Market) bool {
	if market == models.MarketTotal || game.Odds == nil || !game.Odds.HasMoneyline() {
		return false
	}
	mc := features.NewMarketContext(game.Odds, 0, 0)
	home, tier := mc.UnderdogSide()
	return home && tier != models.TierNotUnderdog
}
