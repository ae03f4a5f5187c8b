package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/sharpline/internal/models"
)

func ts(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestRecencyWeightNewestIsOne(t *testing.T) {
	maxDate := ts(2025, 3, 1)
	assert.Equal(t, 1.0, RecencyWeight(maxDate, maxDate, 120))
	// Dates after maxDate clamp to 1.0 rather than exceeding it
	assert.Equal(t, 1.0, RecencyWeight(maxDate.AddDate(0, 0, 3), maxDate, 120))
}

func TestRecencyWeightDecaysMonotonically(t *testing.T) {
	maxDate := ts(2025, 3, 1)
	prev := 1.0
	for d := 1; d <= 3; d++ {
		w := RecencyWeight(maxDate.AddDate(0, 0, -d), maxDate, 120)
		assert.Less(t, w, prev, "weight at %d days should be below %d days", d, d-1)
		assert.Greater(t, w, 0.0)
		prev = w
	}
}

func TestRecencyWeightHalfLife(t *testing.T) {
	maxDate := ts(2025, 6, 1)
	w := RecencyWeight(maxDate.AddDate(0, 0, -120), maxDate, 120)
	assert.InDelta(t, 0.5, w, 1e-9)
}

func TestClassBalanceEqualCounts(t *testing.T) {
	labels := []float64{1, 0, 1, 0}
	b := NewClassBalance(labels, 3.0)
	assert.Equal(t, 1.0, b.PositiveWeight)
	assert.Equal(t, 1.0, b.NegativeWeight)
}

func TestClassBalanceMinorityOversampled(t *testing.T) {
	// 2 positives, 6 negatives, 2x escalation: positives weigh 3*2 = 6
	labels := []float64{1, 1, 0, 0, 0, 0, 0, 0}
	b := NewClassBalance(labels, 2.0)
	assert.InDelta(t, 6.0, b.PositiveWeight, 1e-9)
	assert.Equal(t, 1.0, b.NegativeWeight)
	assert.InDelta(t, 6.0, b.WeightFor(1), 1e-9)
	assert.Equal(t, 1.0, b.WeightFor(0))
}

func TestClassBalanceSingleClass(t *testing.T) {
	b := NewClassBalance([]float64{1, 1, 1}, 5.0)
	assert.Equal(t, 1.0, b.PositiveWeight)
	assert.Equal(t, 1.0, b.NegativeWeight)
}

func TestComputeSampleWeightsAnchorsNewest(t *testing.T) {
	maxDate := ts(2025, 3, 1)
	examples := []Example{
		{Date: maxDate.AddDate(0, 0, -10), Label: 1},
		{Date: maxDate, Label: 0},
		{Date: maxDate.AddDate(0, 0, -30), Label: 1},
	}
	weights := ComputeSampleWeights(examples, WeightConfig{HalfLifeDays: 120})
	assert.Len(t, weights, 3)
	assert.Equal(t, 1.0, weights[1])
	assert.Greater(t, weights[0], weights[2])
	for _, w := range weights {
		assert.Greater(t, w, 0.0)
	}
}

func TestComputeSampleWeightsTierEscalation(t *testing.T) {
	maxDate := ts(2025, 3, 1)
	examples := []Example{
		{Date: maxDate, Label: 1, Tier: models.TierExtreme},
		{Date: maxDate, Label: 0},
		{Date: maxDate, Label: 0},
		{Date: maxDate, Label: 0},
	}
	weights := ComputeSampleWeights(examples, WeightConfig{HalfLifeDays: 120, BalanceClasses: true})
	// Minority ratio 3/1 escalated by the extreme-tier multiplier 5
	assert.InDelta(t, 15.0, weights[0], 1e-9)
	assert.Equal(t, 1.0, weights[1])
}

func TestComputeSampleWeightsNoBalanceForRegression(t *testing.T) {
	maxDate := ts(2025, 3, 1)
	examples := []Example{
		{Date: maxDate, Label: 220.5},
		{Date: maxDate, Label: 198.0},
	}
	weights := ComputeSampleWeights(examples, WeightConfig{HalfLifeDays: 120})
	assert.Equal(t, []float64{1.0, 1.0}, weights)
}
