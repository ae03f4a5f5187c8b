package training

import (
	"math"
	"time"
)

// DefaultHalfLifeDays controls how quickly older examples fade
const DefaultHalfLifeDays = 120.0

// RecencyWeight returns exp(-ln2 * days / halfLife) where days is the
// distance from the most recent training date. The newest example weighs
// exactly 1.0; weights decay toward zero with age.
func RecencyWeight(date, maxDate time.Time, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}
	days := maxDate.Sub(date).Hours() / 24
	if days <= 0 {
		return 1.0
	}
	return math.Exp(-math.Ln2 * days / halfLifeDays)
}

// ClassBalance holds the per-class multipliers for a binary label set. The
// majority class always weighs 1.0; the minority is oversampled by the count
// ratio times a tier-dependent escalation.
type ClassBalance struct {
	PositiveWeight float64
	NegativeWeight float64
}

// NewClassBalance computes balance multipliers from label counts. With equal
// counts both classes weigh 1.0.
func NewClassBalance(labels []float64, tierMultiplier float64) ClassBalance {
	if tierMultiplier <= 0 {
		tierMultiplier = 1.0
	}

	positives := 0
	for _, y := range labels {
		if y > 0.5 {
			positives++
		}
	}
	negatives := len(labels) - positives

	balance := ClassBalance{PositiveWeight: 1.0, NegativeWeight: 1.0}
	switch {
	case positives == 0 || negatives == 0 || positives == negatives:
		return balance
	case positives < negatives:
		balance.PositiveWeight = float64(negatives) / float64(positives) * tierMultiplier
	default:
		balance.NegativeWeight = float64(positives) / float64(negatives) * tierMultiplier
	}
	return balance
}

// WeightFor returns the multiplier for one label
func (cb ClassBalance) WeightFor(label float64) float64 {
	if label > 0.5 {
		return cb.PositiveWeight
	}
	return cb.NegativeWeight
}

// WeightConfig configures per-example sample weighting
type WeightConfig struct {
	HalfLifeDays float64
	// BalanceClasses enables minority oversampling for binary labels;
	// regression targets leave it off
	BalanceClasses bool
}

// ComputeSampleWeights derives one positive weight per example: recency decay
// anchored at the newest example date, multiplied by the class-balance
// factor. Weights are deliberately not renormalized to the sample count; the
// trainer divides by total weight mass instead.
func ComputeSampleWeights(examples []Example, cfg WeightConfig) []float64 {
	if len(examples) == 0 {
		return nil
	}

	maxDate := examples[0].Date
	for _, ex := range examples[1:] {
		if ex.Date.After(maxDate) {
			maxDate = ex.Date
		}
	}

	var balance ClassBalance
	if cfg.BalanceClasses {
		labels := make([]float64, len(examples))
		tierMult := 1.0
		for i, ex := range examples {
			labels[i] = ex.Label
			// The rarest outcome tier present drives the escalation
			if m := ex.Tier.Multiplier(); m > tierMult {
				tierMult = m
			}
		}
		balance = NewClassBalance(labels, tierMult)
	} else {
		balance = ClassBalance{PositiveWeight: 1.0, NegativeWeight: 1.0}
	}

	weights := make([]float64, len(examples))
	for i, ex := range examples {
		weights[i] = RecencyWeight(ex.Date, maxDate, cfg.HalfLifeDays) * balance.WeightFor(ex.Label)
	}
	return weights
}
