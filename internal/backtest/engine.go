package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/ensemble"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/oddsmath"
)

// GameSource loads the games a replay walks over
type GameSource interface {
	GetBySportAndDateRange(ctx context.Context, sport models.Sport, start, end time.Time) ([]*models.GameRecord, error)
}

// Engine orchestrates a historical replay: load settled games, score each
// one, place fixed-stake value bets, and aggregate the outcomes
type Engine struct {
	config    BacktestConfig
	games     GameSource
	predictor *ensemble.Predictor
	logger    *logrus.Logger
}

// NewEngine creates a replay engine
func NewEngine(cfg BacktestConfig, games GameSource, predictor *ensemble.Predictor, logger *logrus.Logger) (*Engine, error) {
	if games == nil {
		return nil, fmt.Errorf("game source is required")
	}
	if predictor == nil {
		return nil, fmt.Errorf("predictor is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{config: cfg, games: games, predictor: predictor, logger: logger}, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// Run replays the configured window and returns the aggregated result with
// the production gate already evaluated
func (e *Engine) Run(ctx context.Context) (*models.BacktestResult, error) {
	sport := e.predictor.Sport()
	market := e.predictor.Market()

	e.logger.WithFields(logrus.Fields{
		"sport":  sport,
		"market": market,
		"start":  e.config.StartDate.Format("2006-01-02"),
		"end":    e.config.EndDate.Format("2006-01-02"),
	}).Info("Starting backtest run")

	games, err := e.games.GetBySportAndDateRange(ctx, sport, e.config.StartDate, e.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	ledger := NewLedger()
	skippedOdds, skippedHistory, skippedPredictions := 0, 0, 0

	for _, game := range games {
		if !game.IsSettled() {
			continue
		}
		if !game.Odds.HasMarket(market) {
			skippedOdds++
			continue
		}
		if !e.predictor.CanScore(game) {
			skippedHistory++
			continue
		}

		pred, err := e.predictor.Predict(game)
		if err != nil {
			e.logger.WithError(err).WithField("game_id", game.ID).Warn("Skipping game, prediction failed")
			skippedPredictions++
			continue
		}

		if wager, ok := e.placeBet(game, pred); ok {
			ledger.Record(wager)
		}
	}

	result := e.buildResult(ledger, skippedOdds, skippedPredictions)
	Evaluate(result, e.config)

	e.logger.WithFields(logrus.Fields{
		"bets":                result.TotalBets,
		"roi":                 result.ROI,
		"ece":                 result.ECE,
		"skipped_odds":        skippedOdds,
		"skipped_history":     skippedHistory,
		"skipped_predictions": skippedPredictions,
		"production_ready":    result.ProductionReady,
	}).Info("Backtest run complete")

	return result, nil
}

// placeBet applies the value rule to both sides of the market and settles the
// chosen side. At most one bet per game; no bet when neither side clears the
// no-vig implied probability by the configured edge.
func (e *Engine) placeBet(game *models.GameRecord, pred *models.Prediction) (Wager, bool) {
	odds := game.Odds
	prob := pred.Probability

	var sideA, sideB side
	switch pred.Market {
	case models.MarketMoneyline:
		impA, impB := oddsmath.NoVig(*odds.HomeMoneyline, *odds.AwayMoneyline)
		sideA = side{name: "home", prob: prob, implied: impA, price: *odds.HomeMoneyline}
		sideB = side{name: "away", prob: 1 - prob, implied: impB, price: *odds.AwayMoneyline}
	case models.MarketSpread:
		impA, impB := oddsmath.NoVig(*odds.HomeSpreadPrice, *odds.AwaySpreadPrice)
		sideA = side{name: "home", prob: prob, implied: impA, price: *odds.HomeSpreadPrice}
		sideB = side{name: "away", prob: 1 - prob, implied: impB, price: *odds.AwaySpreadPrice}
	case models.MarketTotal:
		impA, impB := oddsmath.NoVig(*odds.OverPrice, *odds.UnderPrice)
		sideA = side{name: "over", prob: prob, implied: impA, price: *odds.OverPrice}
		sideB = side{name: "under", prob: 1 - prob, implied: impB, price: *odds.UnderPrice}
	}

	chosen, ok := pickSide(sideA, sideB, e.config.MinEdge)
	if !ok {
		return Wager{}, false
	}

	outcome := e.settle(game, pred.Market, chosen.name)
	profit := decimal.Zero
	switch outcome {
	case OutcomeWin:
		profit = decimal.NewFromFloat(oddsmath.ProfitOnWin(1, chosen.price)).Mul(e.config.Stake)
	case OutcomeLoss:
		profit = e.config.Stake.Neg()
	}

	return Wager{
		GameID:      game.ID,
		Date:        game.Date,
		Season:      game.Season,
		Side:        chosen.name,
		Probability: chosen.prob,
		Implied:     chosen.implied,
		Price:       chosen.price,
		Stake:       e.config.Stake,
		Profit:      profit,
		Outcome:     outcome,
	}, true
}

type side struct {
	name    string
	prob    float64
	implied float64
	price   int
}

// pickSide returns the side with the larger edge among those clearing the
// minimum; a tie goes to the first side
func pickSide(a, b side, minEdge float64) (side, bool) {
	edgeA := a.prob - a.implied
	edgeB := b.prob - b.implied
	okA := edgeA > minEdge
	okB := edgeB > minEdge
	switch {
	case okA && okB:
		if edgeB > edgeA {
			return b, true
		}
		return a, true
	case okA:
		return a, true
	case okB:
		return b, true
	default:
		return side{}, false
	}
}

// settle resolves a wager against the final score; exact landings on the
// spread or total are pushes
func (e *Engine) settle(game *models.GameRecord, market models.Market, betSide string) string {
	switch market {
	case models.MarketMoneyline:
		if game.HomeWon() == (betSide == "home") {
			return OutcomeWin
		}
		return OutcomeLoss
	case models.MarketSpread:
		adjusted := game.Margin() + *game.Odds.Spread
		if adjusted == 0 {
			return OutcomePush
		}
		homeCovered := adjusted > 0
		if homeCovered == (betSide == "home") {
			return OutcomeWin
		}
		return OutcomeLoss
	case models.MarketTotal:
		total := game.TotalPoints()
		line := *game.Odds.Total
		if total == line {
			return OutcomePush
		}
		over := total > line
		if over == (betSide == "over") {
			return OutcomeWin
		}
		return OutcomeLoss
	}
	return OutcomeLoss
}

func (e *Engine) buildResult(ledger *Ledger, skippedOdds, skippedPredictions int) *models.BacktestResult {
	settled := ledger.Settled()
	staked, _ := ledger.TotalStaked.Float64()
	profit, _ := ledger.NetProfit.Float64()

	result := &models.BacktestResult{
		ID:                 uuid.New(),
		RunID:              e.predictor.RunID(),
		Sport:              e.predictor.Sport(),
		Market:             e.predictor.Market(),
		StartDate:          e.config.StartDate,
		EndDate:            e.config.EndDate,
		TotalBets:          len(settled),
		WinningBets:        ledger.Wins(),
		TotalStaked:        staked,
		NetProfit:          profit,
		ROI:                ledger.ROI(),
		ECE:                ECE(settled, e.config.BucketEdges),
		CalibrationSkipped: !e.predictor.Calibrated(),
		SkippedOdds:        skippedOdds,
		SkippedPredictions: skippedPredictions,
		Buckets:            BucketStats(settled, e.config.BucketEdges),
		OddsRanges:         OddsRangeStats(settled),
		Seasons:            SeasonStats(settled, e.config.BucketEdges),
		CreatedAt:          time.Now().UTC(),
	}
	if result.TotalBets > 0 {
		result.WinRate = float64(result.WinningBets) / float64(result.TotalBets)
	}
	return result
}
