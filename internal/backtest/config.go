// Package backtest replays historical games against trained models and
// measures betting performance under a fixed-stake policy.
package backtest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/sharpline/internal/config"
)

// BacktestConfig extends core config with replay-specific settings
type BacktestConfig struct {
	StartDate   time.Time
	EndDate     time.Time
	Stake       decimal.Decimal
	BucketEdges []float64
	MinEdge     float64
	MinROI      float64
	MaxECE      float64
	MinBets     int
	OutputPath  string
}

// DefaultBucketEdges splits [0,1] into deciles for calibration reporting
func DefaultBucketEdges() []float64 {
	return []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.BacktestConfig) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}
	start, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", cfg.EndDate)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid end date: %w", err)
	}

	edges := cfg.BucketEdges
	if len(edges) == 0 {
		edges = DefaultBucketEdges()
	}

	bt := BacktestConfig{
		StartDate:   start,
		EndDate:     end,
		Stake:       decimal.NewFromFloat(cfg.Stake),
		BucketEdges: edges,
		MinEdge:     cfg.MinEdge,
		MinROI:      cfg.MinROI,
		MaxECE:      cfg.MaxECE,
		MinBets:     cfg.MinBets,
		OutputPath:  cfg.OutputPath,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if b.StartDate.After(b.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if !b.Stake.IsPositive() {
		return fmt.Errorf("stake must be positive")
	}
	if len(b.BucketEdges) < 2 {
		return fmt.Errorf("at least two bucket edges are required")
	}
	for i := 1; i < len(b.BucketEdges); i++ {
		if b.BucketEdges[i] <= b.BucketEdges[i-1] {
			return fmt.Errorf("bucket edges must be strictly increasing")
		}
	}
	if b.MinEdge < 0 {
		return fmt.Errorf("minimum edge cannot be negative")
	}
	if b.MinBets < 0 {
		return fmt.Errorf("minimum bets cannot be negative")
	}
	return nil
}
