package models

import (
	"time"

	"github.com/google/uuid"
)

// FeatureVector is a fixed-order numeric summary of one game, built entirely
// from records dated strictly before CutoffDate. Immutable once computed.
type FeatureVector struct {
	GameID     uuid.UUID `json:"game_id"`
	CutoffDate time.Time `json:"cutoff_date"`
	Names      []string  `json:"names"`
	Values     []float64 `json:"values"`
}

// Get returns the value for a named feature
func (f *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range f.Names {
		if n == name {
			return f.Values[i], true
		}
	}
	return 0, false
}

// UnderdogTier buckets a team's market-implied win probability
type UnderdogTier int

const (
	TierNotUnderdog UnderdogTier = iota
	TierModerate
	TierHeavy
	TierExtreme
)

// ClassifyUnderdogTier maps an implied win probability to its tier:
// >= 0.50 not an underdog, [0.33, 0.50) moderate, [0.25, 0.33) heavy,
// < 0.25 extreme.
func ClassifyUnderdogTier(impliedProb float64) UnderdogTier {
	switch {
	case impliedProb >= 0.50:
		return TierNotUnderdog
	case impliedProb >= 0.33:
		return TierModerate
	case impliedProb >= 0.25:
		return TierHeavy
	default:
		return TierExtreme
	}
}

// Multiplier returns the class-balance escalation factor for the tier
func (t UnderdogTier) Multiplier() float64 {
	switch t {
	case TierModerate:
		return 2.0
	case TierHeavy:
		return 3.0
	case TierExtreme:
		return 5.0
	default:
		return 1.0
	}
}

func (t UnderdogTier) String() string {
	switch t {
	case TierModerate:
		return "moderate"
	case TierHeavy:
		return "heavy"
	case TierExtreme:
		return "extreme"
	default:
		return "not_underdog"
	}
}
