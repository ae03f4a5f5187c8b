package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sharpline/internal/ensemble"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/models"
)

type stubGameSource struct {
	games []*models.GameRecord
}

func (s stubGameSource) GetBySportAndDateRange(ctx context.Context, sport models.Sport, start, end time.Time) ([]*models.GameRecord, error) {
	return s.games, nil
}

func replayIntPtr(v int) *int { return &v }

// replaySchedule builds a settled four-team round robin, one game per day,
// with a full moneyline on every game
func replaySchedule(start time.Time, count int) []*models.GameRecord {
	teams := []string{"AAA", "BBB", "CCC", "DDD"}
	pairs := [][2]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {0, 3}, {1, 2}}
	homeML, awayML := -130, 110

	games := make([]*models.GameRecord, 0, count)
	for i := 0; i < count; i++ {
		pair := pairs[i%len(pairs)]
		g := &models.GameRecord{
			ID:       uuid.New(),
			Sport:    models.SportNBA,
			Season:   2025,
			Date:     start.AddDate(0, 0, i),
			HomeTeam: teams[pair[0]],
			AwayTeam: teams[pair[1]],
		}
		if i%3 == 0 {
			g.HomeScore, g.AwayScore = replayIntPtr(98), replayIntPtr(104)
		} else {
			g.HomeScore, g.AwayScore = replayIntPtr(105+i%8), replayIntPtr(97)
		}
		g.Odds = &models.OddsLine{
			GameID: g.ID, Provider: "test",
			HomeMoneyline: &homeML, AwayMoneyline: &awayML,
		}
		games = append(games, g)
	}
	return games
}

// replayArtifact puts its only nonzero weight on the bias column, pinning the
// raw probability at sigmoid(2) regardless of form
func replayArtifact() *models.ModelArtifact {
	names := features.ModelSpec(models.MarketMoneyline, false, false).Names()
	weights := make([]float64, len(names))
	for i, name := range names {
		if name == "bias" {
			weights[i] = 2.0
		}
	}
	return &models.ModelArtifact{
		ID:           uuid.New(),
		RunID:        uuid.New(),
		Sport:        models.SportNBA,
		Market:       models.MarketMoneyline,
		Variant:      models.VariantBase,
		ModelType:    models.ModelTypeLogistic,
		Weights:      weights,
		FeatureNames: names,
		TrainedAt:    time.Now().UTC(),
	}
}

func replayConfig(start time.Time, days int) BacktestConfig {
	return BacktestConfig{
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, days),
		Stake:       decimal.NewFromInt(10),
		BucketEdges: DefaultBucketEdges(),
		MinEdge:     0.02,
	}
}

func TestRunCountsSkippedOdds(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	games := replaySchedule(start, 40)
	for i := 30; i < 33; i++ {
		games[i].Odds = nil
	}
	engine := features.NewEngine(models.SportNBA, games, nil)

	predictor, err := ensemble.NewPredictor(engine, replayArtifact(), nil, nil, nil)
	require.NoError(t, err)

	replay, err := NewEngine(replayConfig(start, 40), stubGameSource{games}, predictor, nil)
	require.NoError(t, err)

	result, err := replay.Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, result.TotalBets, 0)
	assert.Equal(t, 3, result.SkippedOdds)
	assert.Zero(t, result.SkippedPredictions)
}

func TestRunCountsPredictionFailuresSeparately(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	games := replaySchedule(start, 40)
	for i := 30; i < 33; i++ {
		games[i].Odds = nil
	}
	engine := features.NewEngine(models.SportNBA, games, nil)

	// A truncated weight vector makes every scoring attempt fail
	broken := replayArtifact()
	broken.Weights = broken.Weights[:len(broken.Weights)-1]

	predictor, err := ensemble.NewPredictor(engine, broken, nil, nil, nil)
	require.NoError(t, err)

	replay, err := NewEngine(replayConfig(start, 40), stubGameSource{games}, predictor, nil)
	require.NoError(t, err)

	result, err := replay.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.TotalBets)
	assert.Greater(t, result.SkippedPredictions, 0)
	assert.Equal(t, 3, result.SkippedOdds)
}

func TestPickSideLargerEdgeWins(t *testing.T) {
	a := side{name: "home", prob: 0.58, implied: 0.52, price: -110} // edge 0.06
	b := side{name: "away", prob: 0.42, implied: 0.48, price: -110} // edge -0.06

	chosen, ok := pickSide(a, b, 0.02)
	require.True(t, ok)
	assert.Equal(t, "home", chosen.name)
}

func TestPickSideBothQualify(t *testing.T) {
	// Both clear the threshold; the larger edge is taken
	a := side{name: "home", prob: 0.55, implied: 0.52, price: -110} // edge 0.03
	b := side{name: "away", prob: 0.53, implied: 0.48, price: -110} // edge 0.05

	chosen, ok := pickSide(a, b, 0.02)
	require.True(t, ok)
	assert.Equal(t, "away", chosen.name)
}

func TestPickSideTieGoesToFirst(t *testing.T) {
	a := side{name: "home", prob: 0.55, implied: 0.50, price: 100}
	b := side{name: "away", prob: 0.55, implied: 0.50, price: 100}

	chosen, ok := pickSide(a, b, 0.02)
	require.True(t, ok)
	assert.Equal(t, "home", chosen.name)
}

func TestPickSideNoValue(t *testing.T) {
	a := side{name: "home", prob: 0.52, implied: 0.52, price: -110}
	b := side{name: "away", prob: 0.48, implied: 0.48, price: -110}

	_, ok := pickSide(a, b, 0.02)
	assert.False(t, ok)

	// Exactly at the threshold does not qualify, the edge must exceed it
	c := side{name: "home", prob: 0.54, implied: 0.52, price: -110}
	_, ok = pickSide(c, b, 0.02)
	assert.False(t, ok)
}
