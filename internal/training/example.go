// Package training fits weighted linear models over feature vectors and
// produces immutable model artifacts.
package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sharpline/internal/models"
)

// Example is one training row: a feature vector, its outcome label, and the
// metadata weighting and splitting need
type Example struct {
	GameID   uuid.UUID
	Date     time.Time
	Season   int
	Features []float64
	Label    float64
	// Line is the recorded total line for regression targets; zero for
	// classification markets
	Line float64
	Tier models.UnderdogTier
}

// Stage-specific minimum example counts; below these the stage is skipped
// rather than fit on noise
const (
	MinBasicExamples  = 10
	MinTotalExamples  = 50
	MinSpreadExamples = 100
)

// MinExamplesFor returns the training floor for a market
func MinExamplesFor(market models.Market) int {
	switch market {
	case models.MarketTotal:
		return MinTotalExamples
	case models.MarketSpread:
		return MinSpreadExamples
	default:
		return MinBasicExamples
	}
}
