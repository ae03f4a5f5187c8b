package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/backtest"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/features"
	"github.com/yourusername/sharpline/internal/metrics"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/repository"
)

// historyLookbackYears is how far before the replay window games are loaded
// so early-window predictions have rolling history to draw on
const historyLookbackYears = 1

// BacktestPipeline replays the configured window against the latest
// artifacts for each configured market, persists the results, and reports
// them
type BacktestPipeline struct {
	repos  *repository.Repositories
	cfg    *config.Config
	out    io.Writer
	logger *logrus.Logger
}

// NewBacktestPipeline creates a backtest pipeline writing reports to out
func NewBacktestPipeline(repos *repository.Repositories, cfg *config.Config, out io.Writer, logger *logrus.Logger) (*BacktestPipeline, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &BacktestPipeline{repos: repos, cfg: cfg, out: out, logger: logger}, nil
}

// Run backtests every configured market and returns the persisted results.
// A market without trained artifacts fails the run; the remedy is to train.
func (p *BacktestPipeline) Run(ctx context.Context, sport models.Sport) ([]*models.BacktestResult, error) {
	btCfg, err := backtest.FromConfig(&p.cfg.Backtest)
	if err != nil {
		return nil, err
	}

	// Load beyond the window start so the feature engine has prior games
	historyStart := btCfg.StartDate.AddDate(-historyLookbackYears, 0, 0)
	games, err := p.repos.Game.GetBySportAndDateRange(ctx, sport, historyStart, btCfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	engine := features.NewEngine(sport, games, p.logger)

	var results []*models.BacktestResult
	for _, raw := range p.cfg.Training.Markets {
		market, err := models.ParseMarket(raw)
		if err != nil {
			return nil, err
		}

		result, err := p.runMarket(ctx, btCfg, engine, sport, market)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (p *BacktestPipeline) runMarket(ctx context.Context, btCfg backtest.BacktestConfig, engine *features.Engine, sport models.Sport, market models.Market) (*models.BacktestResult, error) {
	started := time.Now()

	predictor, err := loadPredictor(ctx, p.repos, p.cfg, engine, sport, market, p.logger)
	if err != nil {
		return nil, err
	}

	replay, err := backtest.NewEngine(btCfg, p.repos.Game, predictor, p.logger)
	if err != nil {
		return nil, err
	}

	result, err := replay.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.repos.Result.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist backtest result: %w", err)
	}

	metrics.ObserveBacktest(string(sport), string(market), result.ROI, result.ECE, result.ProductionReady, time.Since(started))
	metrics.MalformedOddsSkippedTotal.Add(float64(result.SkippedOdds))
	metrics.BacktestWagersTotal.WithLabelValues(string(sport), string(market), "win").Add(float64(result.WinningBets))
	metrics.BacktestWagersTotal.WithLabelValues(string(sport), string(market), "loss").Add(float64(result.TotalBets - result.WinningBets))

	reporter := backtest.NewReporter(p.out)
	reporter.Print(result)
	if err := reporter.Export(result, btCfg.OutputPath); err != nil {
		p.logger.WithError(err).Warn("Failed to export backtest result")
	}

	return result, nil
}
