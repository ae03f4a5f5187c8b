package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func settledGame(home, away int) *GameRecord {
	return &GameRecord{
		ID:        uuid.New(),
		Sport:     SportNBA,
		Season:    2025,
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		HomeTeam:  "BOS",
		AwayTeam:  "NYK",
		HomeScore: intPtr(home),
		AwayScore: intPtr(away),
	}
}

func TestGameSettlement(t *testing.T) {
	g := settledGame(110, 102)
	assert.True(t, g.IsSettled())
	assert.True(t, g.HomeWon())
	assert.Equal(t, 8.0, g.Margin())
	assert.Equal(t, 212.0, g.TotalPoints())

	unsettled := &GameRecord{HomeTeam: "BOS", AwayTeam: "NYK"}
	assert.False(t, unsettled.IsSettled())
	assert.False(t, unsettled.HomeWon())
	assert.Equal(t, 0.0, unsettled.Margin())
}

func TestTeamPerspective(t *testing.T) {
	g := settledGame(110, 102)

	assert.True(t, g.TeamWon("BOS"))
	assert.False(t, g.TeamWon("NYK"))
	assert.Equal(t, 8.0, g.TeamMargin("BOS"))
	assert.Equal(t, -8.0, g.TeamMargin("NYK"))
	assert.Equal(t, 110.0, g.PointsFor("BOS"))
	assert.Equal(t, 102.0, g.PointsFor("NYK"))
	assert.Equal(t, 102.0, g.PointsAgainst("BOS"))
	assert.Equal(t, "NYK", g.Opponent("BOS"))
	assert.Equal(t, "BOS", g.Opponent("NYK"))
}

func TestMinHistoryGames(t *testing.T) {
	assert.Equal(t, 10, SportNCAAM.MinHistoryGames())
	assert.Equal(t, 5, SportNBA.MinHistoryGames())
	assert.Equal(t, 5, SportNHL.MinHistoryGames())
}

func TestParseSport(t *testing.T) {
	sport, err := ParseSport(" NBA ")
	require.NoError(t, err)
	assert.Equal(t, SportNBA, sport)

	_, err = ParseSport("nfl")
	assert.Error(t, err)
}

func TestParseMarket(t *testing.T) {
	market, err := ParseMarket("Moneyline")
	require.NoError(t, err)
	assert.Equal(t, MarketMoneyline, market)

	_, err = ParseMarket("props")
	assert.Error(t, err)
}

func TestClassifyUnderdogTier(t *testing.T) {
	cases := []struct {
		implied float64
		want    UnderdogTier
	}{
		{0.60, TierNotUnderdog},
		{0.50, TierNotUnderdog},
		{0.45, TierModerate},
		{0.33, TierModerate},
		{0.30, TierHeavy},
		{0.25, TierHeavy},
		{0.20, TierExtreme},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyUnderdogTier(c.implied), "implied %v", c.implied)
	}
}

func TestTierMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, TierNotUnderdog.Multiplier())
	assert.Equal(t, 2.0, TierModerate.Multiplier())
	assert.Equal(t, 3.0, TierHeavy.Multiplier())
	assert.Equal(t, 5.0, TierExtreme.Multiplier())
}

func TestOddsLineCompleteness(t *testing.T) {
	var nilLine *OddsLine
	assert.False(t, nilLine.HasMoneyline())
	assert.False(t, nilLine.HasMarket(MarketSpread))

	line := &OddsLine{HomeMoneyline: intPtr(-150), AwayMoneyline: intPtr(130)}
	assert.True(t, line.HasMoneyline())
	assert.True(t, line.HasMarket(MarketMoneyline))
	assert.False(t, line.HasSpread())
	assert.False(t, line.HasTotal())
}

func TestArtifactPayloadRoundTrip(t *testing.T) {
	artifact := &ModelArtifact{
		ID:           uuid.New(),
		RunID:        uuid.New(),
		Sport:        SportNHL,
		Market:       MarketMoneyline,
		Variant:      VariantBase,
		ModelType:    ModelTypeLogistic,
		Weights:      []float64{0.1, -0.4, 2.2},
		FeatureNames: []string{"bias", "a", "b"},
		Seasons:      []int{2024, 2025},
		TrainedAt:    time.Now().UTC().Truncate(time.Second),
	}

	payload, err := artifact.Payload()
	require.NoError(t, err)

	decoded, err := ArtifactFromPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, artifact.Weights, decoded.Weights)
	assert.Equal(t, artifact.Market, decoded.Market)
	assert.Equal(t, artifact.Seasons, decoded.Seasons)
}
