package models

import (
	"time"

	"github.com/google/uuid"
)

// OddsLine represents the recorded market pricing for one game from one
// provider. All prices are American odds; Spread is quoted from the home
// side's perspective (negative means home favored).
type OddsLine struct {
	GameID          uuid.UUID `db:"game_id" json:"game_id" validate:"required"`
	Provider        string    `db:"provider" json:"provider" validate:"required"`
	HomeMoneyline   *int      `db:"home_moneyline" json:"home_moneyline"`
	AwayMoneyline   *int      `db:"away_moneyline" json:"away_moneyline"`
	Spread          *float64  `db:"spread" json:"spread"`
	HomeSpreadPrice *int      `db:"home_spread_price" json:"home_spread_price"`
	AwaySpreadPrice *int      `db:"away_spread_price" json:"away_spread_price"`
	Total           *float64  `db:"total" json:"total"`
	OverPrice       *int      `db:"over_price" json:"over_price"`
	UnderPrice      *int      `db:"under_price" json:"under_price"`
	RecordedAt      time.Time `db:"recorded_at" json:"recorded_at"`
}

// HasMoneyline reports whether both moneyline sides are present
func (o *OddsLine) HasMoneyline() bool {
	return o != nil && o.HomeMoneyline != nil && o.AwayMoneyline != nil
}

// HasSpread reports whether the spread market is complete
func (o *OddsLine) HasSpread() bool {
	return o != nil && o.Spread != nil && o.HomeSpreadPrice != nil && o.AwaySpreadPrice != nil
}

// HasTotal reports whether the totals market is complete
func (o *OddsLine) HasTotal() bool {
	return o != nil && o.Total != nil && o.OverPrice != nil && o.UnderPrice != nil
}

// HasMarket reports completeness for the given market
func (o *OddsLine) HasMarket(market Market) bool {
	switch market {
	case MarketMoneyline:
		return o.HasMoneyline()
	case MarketSpread:
		return o.HasSpread()
	case MarketTotal:
		return o.HasTotal()
	}
	return false
}
