package backtest

import (
	"fmt"

	"github.com/yourusername/sharpline/internal/models"
)

// Evaluate applies the production gate to a result in place. Every criterion
// is checked so a failing run reports all of its shortfalls, not just the
// first.
func Evaluate(result *models.BacktestResult, cfg BacktestConfig) {
	var reasons []string

	if result.ROI < cfg.MinROI {
		reasons = append(reasons, fmt.Sprintf("roi %.2f%% below minimum %.2f%%", result.ROI*100, cfg.MinROI*100))
	}
	if result.ECE > cfg.MaxECE {
		reasons = append(reasons, fmt.Sprintf("ece %.2f%% above maximum %.2f%%", result.ECE*100, cfg.MaxECE*100))
	}
	if result.TotalBets < cfg.MinBets {
		reasons = append(reasons, fmt.Sprintf("sample of %d bets below minimum %d", result.TotalBets, cfg.MinBets))
	}
	if result.CalibrationSkipped {
		reasons = append(reasons, "calibration was skipped, probabilities are raw model output")
	}

	result.ProductionReady = len(reasons) == 0
	result.FailureReasons = reasons
}
