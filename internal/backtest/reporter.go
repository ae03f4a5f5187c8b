package backtest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/sharpline/internal/models"
)

// Reporter renders a backtest result for humans and exports it for machines
type Reporter struct {
	out io.Writer
}

// NewReporter writes to the given stream, defaulting to stdout
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// Print writes a console summary of the result
func (r *Reporter) Print(result *models.BacktestResult) {
	fmt.Fprintf(r.out, "\nBacktest %s %s  %s to %s\n",
		result.Sport, result.Market,
		result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02"))
	fmt.Fprintf(r.out, "  bets: %d  wins: %d  win rate: %.1f%%\n",
		result.TotalBets, result.WinningBets, result.WinRate*100)
	fmt.Fprintf(r.out, "  staked: %.2f  net: %+.2f  roi: %+.2f%%\n",
		result.TotalStaked, result.NetProfit, result.ROI*100)
	fmt.Fprintf(r.out, "  ece: %.2f%%  skipped odds: %d\n", result.ECE*100, result.SkippedOdds)
	if result.SkippedPredictions > 0 {
		fmt.Fprintf(r.out, "  prediction errors: %d\n", result.SkippedPredictions)
	}
	if result.CalibrationSkipped {
		fmt.Fprintf(r.out, "  calibration: skipped\n")
	}

	if len(result.Buckets) > 0 {
		fmt.Fprintf(r.out, "\n  confidence buckets\n")
		for _, b := range result.Buckets {
			fmt.Fprintf(r.out, "    [%.2f, %.2f)  bets=%-5d win=%.1f%%  avg prob=%.1f%%  roi=%+.1f%%\n",
				b.Low, b.High, b.Bets, b.WinRate*100, b.AvgProb*100, b.ROI*100)
		}
	}

	if len(result.OddsRanges) > 0 {
		fmt.Fprintf(r.out, "\n  odds ranges\n")
		for _, o := range result.OddsRanges {
			fmt.Fprintf(r.out, "    %-36s bets=%-5d win=%.1f%%  roi=%+.1f%%\n",
				o.Label, o.Bets, o.WinRate*100, o.ROI*100)
		}
	}

	if len(result.Seasons) > 0 {
		fmt.Fprintf(r.out, "\n  seasons\n")
		for _, s := range result.Seasons {
			fmt.Fprintf(r.out, "    %d  bets=%-5d win=%.1f%%  roi=%+.1f%%  ece=%.1f%%\n",
				s.Season, s.Bets, float64(s.Wins)/float64(max(s.Bets, 1))*100, s.ROI*100, s.ECE*100)
		}
	}

	if result.ProductionReady {
		fmt.Fprintf(r.out, "\n  PRODUCTION READY\n")
	} else {
		fmt.Fprintf(r.out, "\n  NOT PRODUCTION READY\n")
		for _, reason := range result.FailureReasons {
			fmt.Fprintf(r.out, "    - %s\n", reason)
		}
	}
}

// Export writes the full result as indented JSON to path
func (r *Reporter) Export(result *models.BacktestResult, path string) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result to %s: %w", path, err)
	}
	return nil
}
