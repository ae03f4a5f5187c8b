// Package models defines the core domain entities: games, odds lines, model
// artifacts, predictions, and backtest results.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sport identifies a supported league
type Sport string

const (
	SportNCAAM Sport = "ncaam"
	SportNBA   Sport = "nba"
	SportNHL   Sport = "nhl"
)

// MinHistoryGames returns how many completed prior games each side needs
// before a game qualifies for features. College rosters turn over yearly and
// early-season form is noisy, so ncaam requires a deeper record.
func (s Sport) MinHistoryGames() int {
	if s == SportNCAAM {
		return 10
	}
	return 5
}

// ParseSport validates and normalizes a sport name
func ParseSport(raw string) (Sport, error) {
	switch Sport(strings.ToLower(strings.TrimSpace(raw))) {
	case SportNCAAM:
		return SportNCAAM, nil
	case SportNBA:
		return SportNBA, nil
	case SportNHL:
		return SportNHL, nil
	}
	return "", fmt.Errorf("unknown sport %q", raw)
}

// Market identifies a bet market
type Market string

const (
	MarketMoneyline Market = "moneyline"
	MarketSpread    Market = "spread"
	MarketTotal     Market = "total"
)

// ParseMarket validates and normalizes a market name
func ParseMarket(raw string) (Market, error) {
	switch Market(strings.ToLower(strings.TrimSpace(raw))) {
	case MarketMoneyline:
		return MarketMoneyline, nil
	case MarketSpread:
		return MarketSpread, nil
	case MarketTotal:
		return MarketTotal, nil
	}
	return "", fmt.Errorf("unknown market %q", raw)
}

// GameRecord represents one scheduled or completed game. Scores are nil until
// the game settles; Odds is nil when no line was recorded.
type GameRecord struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required"`
	Sport     Sport     `db:"sport" json:"sport" validate:"required"`
	Season    int       `db:"season" json:"season" validate:"required"`
	Date      time.Time `db:"date" json:"date" validate:"required"`
	HomeTeam  string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string    `db:"away_team" json:"away_team" validate:"required"`
	HomeScore *int      `db:"home_score" json:"home_score"`
	AwayScore *int      `db:"away_score" json:"away_score"`
	Odds      *OddsLine `db:"-" json:"odds,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsSettled reports whether final scores are recorded
func (g *GameRecord) IsSettled() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// HomeWon reports whether the home side won; false for unsettled games
func (g *GameRecord) HomeWon() bool {
	return g.IsSettled() && *g.HomeScore > *g.AwayScore
}

// Margin returns the home-perspective scoring margin
func (g *GameRecord) Margin() float64 {
	if !g.IsSettled() {
		return 0
	}
	return float64(*g.HomeScore - *g.AwayScore)
}

// TotalPoints returns the combined final score
func (g *GameRecord) TotalPoints() float64 {
	if !g.IsSettled() {
		return 0
	}
	return float64(*g.HomeScore + *g.AwayScore)
}

// Involves reports whether team played in this game
func (g *GameRecord) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// SideOf reports whether team was the home side
func (g *GameRecord) SideOf(team string) bool {
	return g.HomeTeam == team
}

// Opponent returns the other side's name
func (g *GameRecord) Opponent(team string) string {
	if g.HomeTeam == team {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// TeamWon reports whether team won this game
func (g *GameRecord) TeamWon(team string) bool {
	if g.SideOf(team) {
		return g.HomeWon()
	}
	return g.IsSettled() && !g.HomeWon() && *g.HomeScore != *g.AwayScore
}

// TeamMargin returns the scoring margin from team's perspective
func (g *GameRecord) TeamMargin(team string) float64 {
	if g.SideOf(team) {
		return g.Margin()
	}
	return -g.Margin()
}

// PointsFor returns team's own score
func (g *GameRecord) PointsFor(team string) float64 {
	if !g.IsSettled() {
		return 0
	}
	if g.SideOf(team) {
		return float64(*g.HomeScore)
	}
	return float64(*g.AwayScore)
}

// PointsAgainst returns the opponent's score
func (g *GameRecord) PointsAgainst(team string) float64 {
	if !g.IsSettled() {
		return 0
	}
	if g.SideOf(team) {
		return float64(*g.AwayScore)
	}
	return float64(*g.HomeScore)
}
