package backtest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/sharpline/internal/models"
)

func gateConfig() BacktestConfig {
	return BacktestConfig{
		Stake:       decimal.NewFromInt(10),
		BucketEdges: DefaultBucketEdges(),
		MinROI:      0.02,
		MaxECE:      0.05,
		MinBets:     100,
	}
}

func TestEvaluatePassing(t *testing.T) {
	result := &models.BacktestResult{ROI: 0.04, ECE: 0.03, TotalBets: 250}
	Evaluate(result, gateConfig())
	assert.True(t, result.ProductionReady)
	assert.Empty(t, result.FailureReasons)
}

func TestEvaluateReportsEveryShortfall(t *testing.T) {
	result := &models.BacktestResult{
		ROI:                -0.01,
		ECE:                0.09,
		TotalBets:          12,
		CalibrationSkipped: true,
	}
	Evaluate(result, gateConfig())

	assert.False(t, result.ProductionReady)
	assert.Len(t, result.FailureReasons, 4)
	assert.Contains(t, result.FailureReasons[0], "roi")
	assert.Contains(t, result.FailureReasons[1], "ece")
	assert.Contains(t, result.FailureReasons[2], "below minimum 100")
	assert.Contains(t, result.FailureReasons[3], "calibration was skipped")
}

func TestEvaluateBoundaryValuesPass(t *testing.T) {
	// Thresholds are inclusive on the passing side
	result := &models.BacktestResult{ROI: 0.02, ECE: 0.05, TotalBets: 100}
	Evaluate(result, gateConfig())
	assert.True(t, result.ProductionReady)
}
