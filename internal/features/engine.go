package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/models"
)

// minOpponentGames is the history floor before an opponent's record counts
// toward opponent strength
const minOpponentGames = 5

// Engine builds feature vectors from an already-materialized game history.
// It never fetches; callers supply the records. All methods are pure reads.
type Engine struct {
	sport  models.Sport
	byTeam map[string][]*models.GameRecord
	logger *logrus.Logger
}

// NewEngine indexes settled games per team, ascending by date. Unsettled
// games are ignored; they can never contribute to a feature.
func NewEngine(sport models.Sport, games []*models.GameRecord, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}

	byTeam := make(map[string][]*models.GameRecord)
	for _, g := range games {
		if !g.IsSettled() {
			continue
		}
		byTeam[g.HomeTeam] = append(byTeam[g.HomeTeam], g)
		byTeam[g.AwayTeam] = append(byTeam[g.AwayTeam], g)
	}
	for team := range byTeam {
		list := byTeam[team]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}

	return &Engine{sport: sport, byTeam: byTeam, logger: logger}
}

// Sport returns the league this engine was built for
func (e *Engine) Sport() models.Sport {
	return e.sport
}

// HistoryBefore returns a team's completed games strictly before cutoff
func (e *Engine) HistoryBefore(team string, cutoff time.Time) *TeamHistory {
	all := e.byTeam[team]
	idx := sort.Search(len(all), func(i int) bool { return !all[i].Date.Before(cutoff) })
	return &TeamHistory{Team: team, Cutoff: cutoff, Games: all[:idx]}
}

// QualifyingGames returns how many completed prior games a team has as of
// cutoff; the trainer uses this against the per-sport floor
func (e *Engine) QualifyingGames(team string, cutoff time.Time) int {
	return e.HistoryBefore(team, cutoff).Count()
}

// OpponentStrength returns the mean win rate of the opponents a team faced
// over its last `window` games. Recursion is bounded to depth 1: each
// opponent's rate comes from its own raw record before the same cutoff, and
// opponents with fewer than 5 completed games are excluded. Defaults to 0.5
// when nothing qualifies.
func (e *Engine) OpponentStrength(team string, cutoff time.Time, window int) float64 {
	history := e.HistoryBefore(team, cutoff)
	games := history.Games
	if len(games) > window {
		games = games[len(games)-window:]
	}

	sum, counted := 0.0, 0
	for _, g := range games {
		opp := g.Opponent(team)
		oppHistory := e.HistoryBefore(opp, cutoff)
		if oppHistory.Count() < minOpponentGames {
			continue
		}
		wins := 0
		for _, og := range oppHistory.Games {
			if og.TeamWon(opp) {
				wins++
			}
		}
		sum += float64(wins) / float64(oppHistory.Count())
		counted++
	}

	if counted == 0 {
		return neutralWinRate
	}
	return sum / float64(counted)
}

// Build produces the feature vector for one game under the given spec. When
// includeMarket is false the context carries no market data, so market
// columns in the spec are impossible by construction. The vector's cutoff is
// always strictly earlier than the game date.
func (e *Engine) Build(game *models.GameRecord, spec Spec, includeMarket bool) (*models.FeatureVector, error) {
	if game == nil {
		return nil, fmt.Errorf("game is required")
	}

	home := e.HistoryBefore(game.HomeTeam, game.Date)
	away := e.HistoryBefore(game.AwayTeam, game.Date)

	// Paranoid leakage check on top of the index bound
	for _, g := range append(append([]*models.GameRecord{}, home.Games...), away.Games...) {
		if !g.Date.Before(game.Date) {
			return nil, fmt.Errorf("game %s on %s: %w", g.ID, g.Date.Format("2006-01-02"), models.ErrLeakage)
		}
	}

	ctx := &Context{
		Home:            home,
		Away:            away,
		HomeOppStrength: e.OpponentStrength(game.HomeTeam, game.Date, WindowLong),
		AwayOppStrength: e.OpponentStrength(game.AwayTeam, game.Date, WindowLong),
	}
	if includeMarket && game.Odds != nil {
		ctx.Market = NewMarketContext(game.Odds, home.AvgMargin(WindowLong), away.AvgMargin(WindowLong))
	}

	values := spec.Vector(ctx)
	if len(values) == 0 {
		return nil, fmt.Errorf("spec %q produced an empty vector", spec.Name)
	}

	return &models.FeatureVector{
		GameID:     game.ID,
		CutoffDate: game.Date.AddDate(0, 0, -1),
		Names:      spec.Names(),
		Values:     values,
	}, nil
}

// HasMinimumHistory reports whether both sides meet the per-sport floor of
// qualifying prior games
func (e *Engine) HasMinimumHistory(game *models.GameRecord) bool {
	floor := e.sport.MinHistoryGames()
	return e.QualifyingGames(game.HomeTeam, game.Date) >= floor &&
		e.QualifyingGames(game.AwayTeam, game.Date) >= floor
}
