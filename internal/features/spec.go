package features

import "github.com/yourusername/sharpline/internal/models"

// Context bundles everything an extractor may draw on for one game: both
// sides' histories, their depth-1 opponent strength, and (optionally) the
// market context. Market is nil when the caller excludes market features.
type Context struct {
	Home            *TeamHistory
	Away            *TeamHistory
	HomeOppStrength float64
	AwayOppStrength float64
	Market          *MarketContext
}

// Extractor computes one named feature from a game context
type Extractor func(ctx *Context) float64

// Feature pairs a stable column name with its extractor
type Feature struct {
	Name    string
	Extract Extractor
}

// Spec is an ordered list of named extractors. Market and sport variants are
// composed from a shared base rather than duplicated per variant.
type Spec struct {
	Name     string
	Features []Feature
}

// Names returns the fixed column ordering
func (s Spec) Names() []string {
	names := make([]string, len(s.Features))
	for i, f := range s.Features {
		names[i] = f.Name
	}
	return names
}

// Vector evaluates every extractor in order
func (s Spec) Vector(ctx *Context) []float64 {
	values := make([]float64, len(s.Features))
	for i, f := range s.Features {
		values[i] = f.Extract(ctx)
	}
	return values
}

// Extend returns a new spec with additional features appended
func (s Spec) Extend(name string, extra ...Feature) Spec {
	features := make([]Feature, 0, len(s.Features)+len(extra))
	features = append(features, s.Features...)
	features = append(features, extra...)
	return Spec{Name: name, Features: features}
}

// BaseSpec is the team-performance-only feature set shared by every market.
// An explicit constant bias column leads the ordering so trained models carry
// an intercept.
func BaseSpec() Spec {
	return Spec{
		Name: "base",
		Features: []Feature{
			{Name: "bias", Extract: func(*Context) float64 { return 1.0 }},
			{Name: "home_win_rate_l5", Extract: func(c *Context) float64 { return c.Home.WinRate(WindowShort) }},
			{Name: "home_win_rate_l10", Extract: func(c *Context) float64 { return c.Home.WinRate(WindowLong) }},
			{Name: "home_avg_margin_l10", Extract: func(c *Context) float64 { return c.Home.AvgMargin(WindowLong) }},
			{Name: "home_points_for_l10", Extract: func(c *Context) float64 { return c.Home.AvgPointsFor(WindowLong) }},
			{Name: "home_points_against_l10", Extract: func(c *Context) float64 { return c.Home.AvgPointsAgainst(WindowLong) }},
			{Name: "home_pace_l10", Extract: func(c *Context) float64 { return c.Home.Pace(WindowLong) }},
			{Name: "home_off_rating_l10", Extract: func(c *Context) float64 { return c.Home.OffensiveRating(WindowLong) }},
			{Name: "home_def_rating_l10", Extract: func(c *Context) float64 { return c.Home.DefensiveRating(WindowLong) }},
			{Name: "home_opp_strength", Extract: func(c *Context) float64 { return c.HomeOppStrength }},
			{Name: "away_win_rate_l5", Extract: func(c *Context) float64 { return c.Away.WinRate(WindowShort) }},
			{Name: "away_win_rate_l10", Extract: func(c *Context) float64 { return c.Away.WinRate(WindowLong) }},
			{Name: "away_avg_margin_l10", Extract: func(c *Context) float64 { return c.Away.AvgMargin(WindowLong) }},
			{Name: "away_points_for_l10", Extract: func(c *Context) float64 { return c.Away.AvgPointsFor(WindowLong) }},
			{Name: "away_points_against_l10", Extract: func(c *Context) float64 { return c.Away.AvgPointsAgainst(WindowLong) }},
			{Name: "away_pace_l10", Extract: func(c *Context) float64 { return c.Away.Pace(WindowLong) }},
			{Name: "away_off_rating_l10", Extract: func(c *Context) float64 { return c.Away.OffensiveRating(WindowLong) }},
			{Name: "away_def_rating_l10", Extract: func(c *Context) float64 { return c.Away.DefensiveRating(WindowLong) }},
			{Name: "away_opp_strength", Extract: func(c *Context) float64 { return c.AwayOppStrength }},
			{Name: "win_rate_diff_l10", Extract: func(c *Context) float64 {
				return c.Home.WinRate(WindowLong) - c.Away.WinRate(WindowLong)
			}},
			{Name: "margin_diff_l10", Extract: func(c *Context) float64 {
				return c.Home.AvgMargin(WindowLong) - c.Away.AvgMargin(WindowLong)
			}},
		},
	}
}

// marketFeatures are the market-derived columns appended only when the caller
// opts in, so base models never see market pricing
func marketFeatures() []Feature {
	return []Feature{
		{Name: "market_home_implied", Extract: func(c *Context) float64 { return c.Market.ImpliedFor(true) }},
		{Name: "market_spread_size", Extract: func(c *Context) float64 {
			if c.Market == nil {
				return 0
			}
			return c.Market.SpreadSize
		}},
		{Name: "market_tight_spread", Extract: func(c *Context) float64 {
			if c.Market != nil && c.Market.TightSpread {
				return 1.0
			}
			return 0
		}},
		{Name: "market_overreaction", Extract: func(c *Context) float64 {
			if c.Market == nil {
				return 0
			}
			return c.Market.Overreaction
		}},
	}
}

// MarketAwareSpec extends a spec with the market-derived columns
func MarketAwareSpec(base Spec) Spec {
	return base.Extend(base.Name+"_market", marketFeatures()...)
}

// SpreadSpec extends the base with against-the-spread form for cover models
func SpreadSpec() Spec {
	return BaseSpec().Extend("spread",
		Feature{Name: "home_ats_cover_l10", Extract: func(c *Context) float64 { return c.Home.ATSCoverRate(WindowLong) }},
		Feature{Name: "home_ats_margin_l10", Extract: func(c *Context) float64 { return c.Home.ATSMargin(WindowLong) }},
		Feature{Name: "away_ats_cover_l10", Extract: func(c *Context) float64 { return c.Away.ATSCoverRate(WindowLong) }},
		Feature{Name: "away_ats_margin_l10", Extract: func(c *Context) float64 { return c.Away.ATSMargin(WindowLong) }},
	)
}

// UnderdogSpec extends the base with upset history and the market tier
// one-hot for underdog-focused models
func UnderdogSpec() Spec {
	return BaseSpec().Extend("underdog",
		Feature{Name: "home_upset_rate_l10", Extract: func(c *Context) float64 { return c.Home.UpsetRate(WindowLong) }},
		Feature{Name: "away_upset_rate_l10", Extract: func(c *Context) float64 { return c.Away.UpsetRate(WindowLong) }},
		Feature{Name: "dog_tier_moderate", Extract: tierIndicator(models.TierModerate)},
		Feature{Name: "dog_tier_heavy", Extract: tierIndicator(models.TierHeavy)},
		Feature{Name: "dog_tier_extreme", Extract: tierIndicator(models.TierExtreme)},
	)
}

// TotalSpec is the regression feature set for combined-score models; tempo
// and efficiency columns dominate, win rates are omitted
func TotalSpec() Spec {
	return Spec{
		Name: "total",
		Features: []Feature{
			{Name: "bias", Extract: func(*Context) float64 { return 1.0 }},
			{Name: "home_pace_l5", Extract: func(c *Context) float64 { return c.Home.Pace(WindowShort) }},
			{Name: "home_pace_l10", Extract: func(c *Context) float64 { return c.Home.Pace(WindowLong) }},
			{Name: "home_points_for_l10", Extract: func(c *Context) float64 { return c.Home.AvgPointsFor(WindowLong) }},
			{Name: "home_points_against_l10", Extract: func(c *Context) float64 { return c.Home.AvgPointsAgainst(WindowLong) }},
			{Name: "home_off_rating_l10", Extract: func(c *Context) float64 { return c.Home.OffensiveRating(WindowLong) }},
			{Name: "home_def_rating_l10", Extract: func(c *Context) float64 { return c.Home.DefensiveRating(WindowLong) }},
			{Name: "away_pace_l5", Extract: func(c *Context) float64 { return c.Away.Pace(WindowShort) }},
			{Name: "away_pace_l10", Extract: func(c *Context) float64 { return c.Away.Pace(WindowLong) }},
			{Name: "away_points_for_l10", Extract: func(c *Context) float64 { return c.Away.AvgPointsFor(WindowLong) }},
			{Name: "away_points_against_l10", Extract: func(c *Context) float64 { return c.Away.AvgPointsAgainst(WindowLong) }},
			{Name: "away_off_rating_l10", Extract: func(c *Context) float64 { return c.Away.OffensiveRating(WindowLong) }},
			{Name: "away_def_rating_l10", Extract: func(c *Context) float64 { return c.Away.DefensiveRating(WindowLong) }},
			{Name: "combined_pace_l10", Extract: func(c *Context) float64 {
				return (c.Home.Pace(WindowLong) + c.Away.Pace(WindowLong)) / 2
			}},
		},
	}
}

// SpecFor returns the canonical base spec for a market
func SpecFor(market models.Market) Spec {
	switch market {
	case models.MarketSpread:
		return SpreadSpec()
	case models.MarketTotal:
		return TotalSpec()
	default:
		return BaseSpec()
	}
}

// ModelSpec resolves the full spec for a model configuration. The underdog
// variant only exists for moneyline; other markets ignore the flag.
func ModelSpec(market models.Market, marketAware, underdog bool) Spec {
	spec := SpecFor(market)
	if underdog && market == models.MarketMoneyline {
		spec = UnderdogSpec()
	}
	if marketAware {
		spec = MarketAwareSpec(spec)
	}
	return spec
}

func tierIndicator(tier models.UnderdogTier) Extractor {
	return func(c *Context) float64 {
		if c.Market == nil {
			return 0
		}
		if _, t := c.Market.UnderdogSide(); t == tier {
			return 1.0
		}
		return 0
	}
}
