package features

import (
	"math"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/oddsmath"
)

// tightSpreadPoints is the threshold below which a game is considered a
// near-pickem
const tightSpreadPoints = 3.0

// MarketContext carries the market-derived quantities for one game. It is
// built separately from team form so that base models can train without
// market leakage.
type MarketContext struct {
	Line         *models.OddsLine
	HomeImplied  float64
	AwayImplied  float64
	SpreadSize   float64
	TightSpread  bool
	Overreaction float64
	HomeTier     models.UnderdogTier
	AwayTier     models.UnderdogTier
}

// NewMarketContext derives market features from a recorded odds line. The
// recent margins feed the overreaction measure: how far the market line sits
// from what recent scoring differential alone implies.
func NewMarketContext(line *models.OddsLine, homeRecentMargin, awayRecentMargin float64) *MarketContext {
	if line == nil {
		return nil
	}

	mc := &MarketContext{
		Line:        line,
		HomeImplied: 0.5,
		AwayImplied: 0.5,
	}

	if line.HasMoneyline() {
		mc.HomeImplied, mc.AwayImplied = oddsmath.NoVig(*line.HomeMoneyline, *line.AwayMoneyline)
	}
	mc.HomeTier = models.ClassifyUnderdogTier(mc.HomeImplied)
	mc.AwayTier = models.ClassifyUnderdogTier(mc.AwayImplied)

	if line.Spread != nil {
		mc.SpreadSize = math.Abs(*line.Spread)
		mc.TightSpread = mc.SpreadSize <= tightSpreadPoints

		// A spread of -7 says the market expects home to win by 7; compare
		// against the performance-implied line from recent margins.
		performanceLine := -(homeRecentMargin - awayRecentMargin) / 2
		mc.Overreaction = math.Abs(*line.Spread - performanceLine)
	}

	return mc
}

// ImpliedFor returns the implied probability for the home or away side
func (mc *MarketContext) ImpliedFor(home bool) float64 {
	if mc == nil {
		return 0.5
	}
	if home {
		return mc.HomeImplied
	}
	return mc.AwayImplied
}

// UnderdogSide reports which side the market prices as the underdog, along
// with its tier. The home side wins ties.
func (mc *MarketContext) UnderdogSide() (home bool, tier models.UnderdogTier) {
	if mc == nil {
		return false, models.TierNotUnderdog
	}
	if mc.HomeImplied < mc.AwayImplied {
		return true, mc.HomeTier
	}
	return false, mc.AwayTier
}
