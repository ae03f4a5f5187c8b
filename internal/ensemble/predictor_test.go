package ensemble

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/models"
)

func intPtr(v int) *int { return &v }

func scheduleFor(team string, count int, lastDate time.Time, teamScore, oppScore int) []*models.GameRecord {
	games := make([]*models.GameRecord, 0, count)
	for i := 0; i < count; i++ {
		g := &models.GameRecord{
			ID:     uuid.New(),
			Sport:  models.SportNBA,
			Season: 2025,
			Date:   lastDate.AddDate(0, 0, -i),
		}
		if i%2 == 0 {
			g.HomeTeam, g.AwayTeam = team, "FILL"
			g.HomeScore, g.AwayScore = intPtr(teamScore), intPtr(oppScore)
		} else {
			g.HomeTeam, g.AwayTeam = "FILL", team
			g.HomeScore, g.AwayScore = intPtr(oppScore), intPtr(teamScore)
		}
		games = append(games, g)
	}
	return games
}

func predictionEngine(gameDate time.Time) *features.Engine {
	history := append(
		scheduleFor("BOS", 12, gameDate.AddDate(0, 0, -1), 112, 104),
		scheduleFor("NYK", 12, gameDate.AddDate(0, 0, -1), 101, 99)...,
	)
	return features.NewEngine(models.SportNBA, history, nil)
}

// logisticArtifact builds an artifact whose only nonzero weight sits on the
// bias column, so the raw probability is sigmoid(biasWeight) regardless of
// team form
func logisticArtifact(variant models.ModelVariant, marketAware bool, biasWeight float64) *models.ModelArtifact {
	names := features.ModelSpec(models.MarketMoneyline, marketAware, false).Names()
	weights := make([]float64, len(names))
	for i, name := range names {
		if name == "bias" {
			weights[i] = biasWeight
		}
	}
	return &models.ModelArtifact{
		ID:           uuid.New(),
		RunID:        uuid.New(),
		Sport:        models.SportNBA,
		Market:       models.MarketMoneyline,
		Variant:      variant,
		ModelType:    models.ModelTypeLogistic,
		Weights:      weights,
		FeatureNames: names,
		TrainedAt:    time.Now().UTC(),
	}
}

func moneylineGame(gameDate time.Time, home, away int) *models.GameRecord {
	g := &models.GameRecord{
		ID: uuid.New(), Sport: models.SportNBA, Season: 2025, Date: gameDate,
		HomeTeam: "BOS", AwayTeam: "NYK",
	}
	g.Odds = &models.OddsLine{
		GameID: g.ID, Provider: "test",
		HomeMoneyline: &home, AwayMoneyline: &away,
	}
	return g
}

func sigmoidOf(z float64) float64 { return 1.0 / (1.0 + math.Exp(-z)) }

func TestNewPredictorValidatesArtifacts(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)

	_, err := NewPredictor(nil, logisticArtifact(models.VariantBase, false, 0), nil, nil, nil)
	assert.Error(t, err, "engine required")

	_, err = NewPredictor(engine, nil, nil, nil, nil)
	assert.Error(t, err, "base artifact required")

	mismatched := logisticArtifact(models.VariantMarketAware, true, 0)
	mismatched.Market = models.MarketSpread
	_, err = NewPredictor(engine, logisticArtifact(models.VariantBase, false, 0), mismatched, nil, nil)
	assert.Error(t, err, "market mismatch")
}

func TestPredictBaseOnly(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)
	base := logisticArtifact(models.VariantBase, false, 2.0)

	p, err := NewPredictor(engine, base, nil, nil, nil)
	require.NoError(t, err)

	game := moneylineGame(gameDate, -180, 160)
	require.True(t, p.CanScore(game))

	pred, err := p.Predict(game)
	require.NoError(t, err)

	want := sigmoidOf(2.0)
	assert.InDelta(t, want, pred.Probability, 1e-9)
	assert.InDelta(t, want, pred.RawBase, 1e-9)
	assert.Nil(t, pred.RawMarket)
	assert.False(t, pred.Calibrated)
	assert.Equal(t, SideHome, pred.Side)
	assert.Equal(t, base.RunID, pred.RunID)
}

func TestPredictBlendsMarketMember(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)
	base := logisticArtifact(models.VariantBase, false, 2.0)
	market := logisticArtifact(models.VariantMarketAware, true, 0)

	p, err := NewPredictor(engine, base, market, nil, nil)
	require.NoError(t, err)

	// Home favorite, so the standard 70/30 weights apply
	pred, err := p.Predict(moneylineGame(gameDate, -180, 160))
	require.NoError(t, err)

	require.NotNil(t, pred.RawMarket)
	assert.InDelta(t, 0.5, *pred.RawMarket, 1e-9)
	want := 0.7*sigmoidOf(2.0) + 0.3*0.5
	assert.InDelta(t, want, pred.Probability, 1e-9)
}

func TestPredictUnderdogWeights(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)
	base := logisticArtifact(models.VariantBase, false, 2.0)
	market := logisticArtifact(models.VariantMarketAware, true, 0)

	p, err := NewPredictor(engine, base, market, nil, nil)
	require.NoError(t, err)

	// Home is the market underdog at +150, switching to the even weights
	pred, err := p.Predict(moneylineGame(gameDate, 150, -180))
	require.NoError(t, err)

	want := 0.5*sigmoidOf(2.0) + 0.5*0.5
	assert.InDelta(t, want, pred.Probability, 1e-9)
}

// dogArtifact mirrors logisticArtifact for the underdog-focused variant
func dogArtifact(variant models.ModelVariant, marketAware bool, biasWeight float64) *models.ModelArtifact {
	names := features.ModelSpec(models.MarketMoneyline, marketAware, true).Names()
	weights := make([]float64, len(names))
	for i, name := range names {
		if name == "bias" {
			weights[i] = biasWeight
		}
	}
	return &models.ModelArtifact{
		ID:           uuid.New(),
		RunID:        uuid.New(),
		Sport:        models.SportNBA,
		Market:       models.MarketMoneyline,
		Variant:      variant,
		Underdog:     true,
		ModelType:    models.ModelTypeLogistic,
		Weights:      weights,
		FeatureNames: names,
		TrainedAt:    time.Now().UTC(),
	}
}

func TestPredictRoutesUnderdogGamesThroughDogPair(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)
	base := logisticArtifact(models.VariantBase, false, 2.0)
	market := logisticArtifact(models.VariantMarketAware, true, 0)

	p, err := NewPredictor(engine, base, market, nil, nil)
	require.NoError(t, err)
	require.NoError(t, p.AttachUnderdogModels(
		dogArtifact(models.VariantBase, false, -1.0),
		dogArtifact(models.VariantMarketAware, true, 0),
	))

	// Home underdog at +150 scores with the dog pair under even weights
	pred, err := p.Predict(moneylineGame(gameDate, 150, -180))
	require.NoError(t, err)
	want := 0.5*sigmoidOf(-1.0) + 0.5*0.5
	assert.InDelta(t, want, pred.Probability, 1e-9)
	assert.InDelta(t, sigmoidOf(-1.0), pred.RawBase, 1e-9)

	// A home favorite still scores with the standard pair
	pred, err = p.Predict(moneylineGame(gameDate, -180, 160))
	require.NoError(t, err)
	want = 0.7*sigmoidOf(2.0) + 0.3*0.5
	assert.InDelta(t, want, pred.Probability, 1e-9)
}

func TestPredictUsesDogCalibrationCurve(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)
	base := logisticArtifact(models.VariantBase, false, 2.0)

	dogBase := dogArtifact(models.VariantBase, false, -1.0)
	dogBase.Calibration = &models.CalibrationCurve{
		X: []float64{0.0, 1.0}, Y: []float64{0.25, 0.25},
		SampleCount: 500, Method: "isotonic",
	}

	p, err := NewPredictor(engine, base, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, p.AttachUnderdogModels(dogBase, nil))

	pred, err := p.Predict(moneylineGame(gameDate, 150, -180))
	require.NoError(t, err)
	assert.True(t, pred.Calibrated)
	assert.InDelta(t, 0.25, pred.Probability, 1e-9)

	pred, err = p.Predict(moneylineGame(gameDate, -180, 160))
	require.NoError(t, err)
	assert.False(t, pred.Calibrated)
	assert.InDelta(t, sigmoidOf(2.0), pred.Probability, 1e-9)
}

func TestAttachUnderdogModelsValidates(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p, err := NewPredictor(predictionEngine(gameDate), logisticArtifact(models.VariantBase, false, 0), nil, nil, nil)
	require.NoError(t, err)

	assert.Error(t, p.AttachUnderdogModels(nil, nil), "base required")

	notDog := logisticArtifact(models.VariantBase, false, 0)
	assert.Error(t, p.AttachUnderdogModels(notDog, nil), "underdog flag required")

	mismatched := dogArtifact(models.VariantBase, false, 0)
	mismatched.Market = models.MarketSpread
	assert.Error(t, p.AttachUnderdogModels(mismatched, nil), "market mismatch")
}

func TestPredictTotalRequiresLine(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	engine := predictionEngine(gameDate)
	base := logisticArtifact(models.VariantBase, false, 0)
	base.Market = models.MarketTotal

	p, err := NewPredictor(engine, base, nil, nil, nil)
	require.NoError(t, err)

	_, err = p.Predict(moneylineGame(gameDate, -180, 160))
	assert.ErrorIs(t, err, models.ErrMalformedOdds)
}

func TestPredictRequiresGame(t *testing.T) {
	gameDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p, err := NewPredictor(predictionEngine(gameDate), logisticArtifact(models.VariantBase, false, 0), nil, nil, nil)
	require.NoError(t, err)

	_, err = p.Predict(nil)
	assert.Error(t, err)
}
