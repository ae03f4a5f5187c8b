package features

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sharpline/internal/models"
)

func intPtr(v int) *int { return &v }

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

// seasonGames builds an alternating home/away schedule between team and a
// rotating set of opponents, one game per day ending the day before cutoff
func seasonGames(team string, count int, lastDate time.Time, teamScore, oppScore int) []*models.GameRecord {
	games := make([]*models.GameRecord, 0, count)
	opponents := []string{"OPP1", "OPP2", "OPP3"}
	for i := 0; i < count; i++ {
		date := lastDate.AddDate(0, 0, -i)
		opp := opponents[i%len(opponents)]
		g := &models.GameRecord{
			ID:     uuid.New(),
			Sport:  models.SportNBA,
			Season: 2025,
			Date:   date,
		}
		if i%2 == 0 {
			g.HomeTeam, g.AwayTeam = team, opp
			g.HomeScore, g.AwayScore = intPtr(teamScore), intPtr(oppScore)
		} else {
			g.HomeTeam, g.AwayTeam = opp, team
			g.HomeScore, g.AwayScore = intPtr(oppScore), intPtr(teamScore)
		}
		games = append(games, g)
	}
	return games
}

func TestHistoryBeforeIsStrict(t *testing.T) {
	cutoff := day(2024, 3, 1)
	games := seasonGames("BOS", 8, cutoff.AddDate(0, 0, -1), 110, 100)
	// A game exactly on the cutoff date must be excluded
	onCutoff := &models.GameRecord{
		ID: uuid.New(), Sport: models.SportNBA, Season: 2024, Date: cutoff,
		HomeTeam: "BOS", AwayTeam: "OPP1",
		HomeScore: intPtr(120), AwayScore: intPtr(90),
	}
	engine := NewEngine(models.SportNBA, append(games, onCutoff), nil)

	history := engine.HistoryBefore("BOS", cutoff)
	assert.Equal(t, 8, history.Count())
	for _, g := range history.Games {
		assert.True(t, g.Date.Before(cutoff), "game on %s not before cutoff", g.Date)
	}
}

func TestBuildCutoffPrecedesGameDate(t *testing.T) {
	gameDate := day(2024, 3, 1)
	history := append(
		seasonGames("BOS", 12, gameDate.AddDate(0, 0, -1), 112, 104),
		seasonGames("NYK", 12, gameDate.AddDate(0, 0, -1), 101, 99)...,
	)
	engine := NewEngine(models.SportNBA, history, nil)

	target := &models.GameRecord{
		ID: uuid.New(), Sport: models.SportNBA, Season: 2024, Date: gameDate,
		HomeTeam: "BOS", AwayTeam: "NYK",
	}

	vector, err := engine.Build(target, BaseSpec(), false)
	require.NoError(t, err)
	assert.True(t, vector.CutoffDate.Before(gameDate))
	assert.Equal(t, len(BaseSpec().Names()), len(vector.Values))

	bias, ok := vector.Get("bias")
	require.True(t, ok)
	assert.Equal(t, 1.0, bias)
}

func TestBuildRejectsUnsettledHistory(t *testing.T) {
	gameDate := day(2024, 3, 1)
	games := seasonGames("BOS", 6, gameDate.AddDate(0, 0, -1), 110, 100)
	// Unsettled games never enter the index, so they cannot leak
	games = append(games, &models.GameRecord{
		ID: uuid.New(), Sport: models.SportNBA, Season: 2024,
		Date: gameDate.AddDate(0, 0, -2), HomeTeam: "BOS", AwayTeam: "OPP1",
	})
	engine := NewEngine(models.SportNBA, games, nil)
	assert.Equal(t, 6, engine.QualifyingGames("BOS", gameDate))
}

func TestHasMinimumHistory(t *testing.T) {
	gameDate := day(2024, 3, 1)
	games := append(
		seasonGames("BOS", 5, gameDate.AddDate(0, 0, -1), 110, 100),
		seasonGames("NYK", 4, gameDate.AddDate(0, 0, -1), 100, 105)...,
	)
	engine := NewEngine(models.SportNBA, games, nil)

	target := &models.GameRecord{
		ID: uuid.New(), Sport: models.SportNBA, Season: 2024, Date: gameDate,
		HomeTeam: "BOS", AwayTeam: "NYK",
	}
	// NBA floor is 5; NYK has only 4 prior games
	assert.False(t, engine.HasMinimumHistory(target))

	games = append(games, seasonGames("NYK", 1, gameDate.AddDate(0, 0, -40), 90, 100)...)
	engine = NewEngine(models.SportNBA, games, nil)
	assert.True(t, engine.HasMinimumHistory(target))
}

func TestBuildRequiresGame(t *testing.T) {
	engine := NewEngine(models.SportNBA, nil, nil)
	_, err := engine.Build(nil, BaseSpec(), false)
	assert.Error(t, err)
}

func TestOpponentStrengthDefaultsNeutral(t *testing.T) {
	gameDate := day(2024, 3, 1)
	// Opponents with fewer than 5 games are excluded, leaving nothing
	games := seasonGames("BOS", 3, gameDate.AddDate(0, 0, -1), 110, 100)
	engine := NewEngine(models.SportNBA, games, nil)
	assert.Equal(t, 0.5, engine.OpponentStrength("BOS", gameDate, WindowLong))
}
