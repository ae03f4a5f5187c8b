package training

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/models"
)

func intPtr(v int) *int { return &v }

// seasonSchedule builds a settled round-robin season among four teams, one
// game per day, every game carrying a full moneyline
func seasonSchedule(start time.Time, count int) []*models.GameRecord {
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
			g.HomeScore, g.AwayScore = intPtr(98), intPtr(104)
		} else {
			g.HomeScore, g.AwayScore = intPtr(105+i%8), intPtr(97)
		}
		g.Odds = &models.OddsLine{
			GameID: g.ID, Provider: "test",
			HomeMoneyline: &homeML, AwayMoneyline: &awayML,
		}
		games = append(games, g)
	}
	return games
}

func TestTrainMarketInsufficientData(t *testing.T) {
	start := ts(2025, 1, 1)
	games := seasonSchedule(start, 8)
	engine := features.NewEngine(models.SportNBA, games, nil)
	trainer := NewTrainer(engine, DefaultConfig(), nil)

	_, err := trainer.TrainMarket(uuid.New(), models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestTrainMarketHonorsConfiguredFloor(t *testing.T) {
	start := ts(2024, 11, 1)
	games := seasonSchedule(start, 80)
	engine := features.NewEngine(models.SportNBA, games, nil)

	// The same schedule trains fine under the default floor but is rejected
	// when the configured moneyline floor exceeds the qualifying examples
	cfg := DefaultConfig()
	cfg.MinExamples = 1000
	trainer := NewTrainer(engine, cfg, nil)

	_, err := trainer.TrainMarket(uuid.New(), models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	assert.ErrorIs(t, err, models.ErrInsufficientData)

	cfg.MinExamples = 5
	trainer = NewTrainer(engine, cfg, nil)
	result, err := trainer.TrainMarket(uuid.New(), models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	require.NoError(t, err)
	assert.NotNil(t, result.Artifact)
}

func TestTrainMarketMoneylineBase(t *testing.T) {
	start := ts(2024, 11, 1)
	games := seasonSchedule(start, 80)
	engine := features.NewEngine(models.SportNBA, games, nil)
	trainer := NewTrainer(engine, DefaultConfig(), nil)

	runID := uuid.New()
	result, err := trainer.TrainMarket(runID, models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	require.NoError(t, err)
	require.NotNil(t, result.Artifact)

	a := result.Artifact
	assert.Equal(t, runID, a.RunID)
	assert.Equal(t, models.SportNBA, a.Sport)
	assert.Equal(t, models.MarketMoneyline, a.Market)
	assert.Equal(t, models.VariantBase, a.Variant)
	assert.Equal(t, models.ModelTypeLogistic, a.ModelType)
	assert.Equal(t, len(a.FeatureNames), len(a.Weights))
	assert.Equal(t, []int{2025}, a.Seasons)

	assert.Greater(t, a.Validation.Examples, 0)
	assert.Greater(t, a.Validation.TrainSize, a.Validation.Examples)
	assert.Greater(t, a.Validation.TotalMass, 0.0)

	require.NotEmpty(t, result.ValPredictions)
	assert.Equal(t, a.Validation.Examples, len(result.ValPredictions))
	for _, p := range result.ValPredictions {
		assert.Greater(t, p.Prob, 0.0)
		assert.Less(t, p.Prob, 1.0)
	}
}

func TestTrainMarketIsDeterministic(t *testing.T) {
	start := ts(2024, 11, 1)
	games := seasonSchedule(start, 80)
	engine := features.NewEngine(models.SportNBA, games, nil)
	trainer := NewTrainer(engine, DefaultConfig(), nil)

	runID := uuid.New()
	first, err := trainer.TrainMarket(runID, models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	require.NoError(t, err)
	second, err := trainer.TrainMarket(runID, models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	require.NoError(t, err)

	assert.Equal(t, first.Artifact.Weights, second.Artifact.Weights)
}

func TestTrainMarketSkipsGamesWithoutOdds(t *testing.T) {
	start := ts(2024, 11, 1)
	games := seasonSchedule(start, 80)
	// Strip odds from a handful; they are excluded, not fatal
	for i := 40; i < 45; i++ {
		games[i].Odds = nil
	}
	engine := features.NewEngine(models.SportNBA, games, nil)
	trainer := NewTrainer(engine, DefaultConfig(), nil)

	result, err := trainer.TrainMarket(uuid.New(), models.MarketMoneyline, models.VariantBase, false, games, []int{2025})
	require.NoError(t, err)
	assert.NotNil(t, result.Artifact)
}
