// Package features converts chronologically ordered game history into
// fixed-width numeric feature vectors, using only information dated strictly
// before each target game.
package features

import (
	"time"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/oddsmath"
)

// Rolling window sizes
const (
	WindowShort = 5
	WindowLong  = 10
)

// neutralWinRate is used when a team has fewer qualifying games than the window
const neutralWinRate = 0.5

// TeamHistory is a team's completed prior games as of a cutoff date, oldest
// first. Derived, never stored; every entry has final scores.
type TeamHistory struct {
	Team   string
	Cutoff time.Time
	Games  []*models.GameRecord
}

// lastN returns the most recent n games, or nil when fewer than n exist
func (h *TeamHistory) lastN(n int) []*models.GameRecord {
	if len(h.Games) < n {
		return nil
	}
	return h.Games[len(h.Games)-n:]
}

// Count returns the number of qualifying prior games
func (h *TeamHistory) Count() int {
	return len(h.Games)
}

// WinRate returns the win rate over the last n completed games, or the
// neutral default when fewer than n qualify
func (h *TeamHistory) WinRate(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return neutralWinRate
	}
	wins := 0
	for _, g := range games {
		if g.TeamWon(h.Team) {
			wins++
		}
	}
	return float64(wins) / float64(n)
}

// AvgMargin returns the average scoring margin over the last n games
func (h *TeamHistory) AvgMargin(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return 0
	}
	sum := 0.0
	for _, g := range games {
		sum += g.TeamMargin(h.Team)
	}
	return sum / float64(n)
}

// AvgPointsFor returns average points scored over the last n games
func (h *TeamHistory) AvgPointsFor(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return sportBaseline(h.Games)
	}
	sum := 0.0
	for _, g := range games {
		sum += g.PointsFor(h.Team)
	}
	return sum / float64(n)
}

// AvgPointsAgainst returns average points conceded over the last n games
func (h *TeamHistory) AvgPointsAgainst(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return sportBaseline(h.Games)
	}
	sum := 0.0
	for _, g := range games {
		sum += g.PointsAgainst(h.Team)
	}
	return sum / float64(n)
}

// Pace returns the average combined score over the last n games, a tempo proxy
func (h *TeamHistory) Pace(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return 2 * sportBaseline(h.Games)
	}
	sum := 0.0
	for _, g := range games {
		sum += g.TotalPoints()
	}
	return sum / float64(n)
}

// OffensiveRating returns points scored per 100 combined points, an
// efficiency proxy that separates scoring from tempo
func (h *TeamHistory) OffensiveRating(n int) float64 {
	pace := h.Pace(n)
	if pace <= 0 {
		return 50
	}
	return 100 * h.AvgPointsFor(n) / pace
}

// DefensiveRating returns points conceded per 100 combined points
func (h *TeamHistory) DefensiveRating(n int) float64 {
	pace := h.Pace(n)
	if pace <= 0 {
		return 50
	}
	return 100 * h.AvgPointsAgainst(n) / pace
}

// ATSCoverRate returns the rate at which the team covered the recorded spread
// over the last n games. Games without a spread line are skipped; when no
// priced games remain the neutral default applies.
func (h *TeamHistory) ATSCoverRate(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return neutralWinRate
	}
	covers, priced := 0, 0
	for _, g := range games {
		if !g.Odds.HasSpread() {
			continue
		}
		priced++
		if coveredSpread(g, h.Team) {
			covers++
		}
	}
	if priced == 0 {
		return neutralWinRate
	}
	return float64(covers) / float64(priced)
}

// ATSMargin returns the average margin relative to the recorded spread over
// the last n games with a priced spread
func (h *TeamHistory) ATSMargin(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return 0
	}
	sum, priced := 0.0, 0
	for _, g := range games {
		if !g.Odds.HasSpread() {
			continue
		}
		priced++
		sum += g.TeamMargin(h.Team) + teamSpread(g, h.Team)
	}
	if priced == 0 {
		return 0
	}
	return sum / float64(priced)
}

// UpsetRate returns how often the team won as a market underdog over the last
// n games. Games without moneyline pricing are skipped.
func (h *TeamHistory) UpsetRate(n int) float64 {
	games := h.lastN(n)
	if games == nil {
		return 0
	}
	upsets, dogGames := 0, 0
	for _, g := range games {
		if !g.Odds.HasMoneyline() {
			continue
		}
		if impliedFor(g, h.Team) >= 0.5 {
			continue
		}
		dogGames++
		if g.TeamWon(h.Team) {
			upsets++
		}
	}
	if dogGames == 0 {
		return 0
	}
	return float64(upsets) / float64(dogGames)
}

// coveredSpread reports whether team beat its spread in a settled game
func coveredSpread(g *models.GameRecord, team string) bool {
	return g.TeamMargin(team)+teamSpread(g, team) > 0
}

// teamSpread returns the spread from team's perspective (line is quoted for
// the home side)
func teamSpread(g *models.GameRecord, team string) float64 {
	if !g.Odds.HasSpread() {
		return 0
	}
	if g.SideOf(team) {
		return *g.Odds.Spread
	}
	return -*g.Odds.Spread
}

// impliedFor returns the vig-free implied win probability for team
func impliedFor(g *models.GameRecord, team string) float64 {
	if !g.Odds.HasMoneyline() {
		return 0.5
	}
	home, away := oddsmath.NoVig(*g.Odds.HomeMoneyline, *g.Odds.AwayMoneyline)
	if g.SideOf(team) {
		return home
	}
	return away
}

// sportBaseline estimates a neutral per-game score from whatever settled
// games exist, falling back to a generic constant on an empty history
func sportBaseline(games []*models.GameRecord) float64 {
	if len(games) == 0 {
		return 70
	}
	sum := 0.0
	for _, g := range games {
		sum += g.TotalPoints()
	}
	return sum / float64(len(games)) / 2
}
