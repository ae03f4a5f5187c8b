package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationMetricsPerfect(t *testing.T) {
	preds := []ValPrediction{
		{Prob: 0.95, Label: 1},
		{Prob: 0.05, Label: 0},
		{Prob: 0.88, Label: 1},
		{Prob: 0.12, Label: 0},
	}
	m := ClassificationMetrics(preds)
	assert.Equal(t, 4, m.Examples)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.Less(t, m.LogLoss, 0.2)
	assert.Less(t, m.Brier, 0.02)
}

func TestClassificationMetricsUninformative(t *testing.T) {
	preds := []ValPrediction{
		{Prob: 0.5, Label: 1},
		{Prob: 0.5, Label: 0},
	}
	m := ClassificationMetrics(preds)
	assert.InDelta(t, 0.25, m.Brier, 1e-9)
	// ln(2) log loss for a coin-flip model
	assert.InDelta(t, 0.6931, m.LogLoss, 1e-4)
}

func TestClassificationMetricsClampsExtremes(t *testing.T) {
	// A confidently wrong probability of exactly 1.0 must not produce Inf
	preds := []ValPrediction{{Prob: 1.0, Label: 0}}
	m := ClassificationMetrics(preds)
	assert.False(t, m.LogLoss != m.LogLoss, "log loss is NaN")
	assert.Greater(t, m.LogLoss, 10.0)
}

func TestClassificationMetricsEmpty(t *testing.T) {
	m := ClassificationMetrics(nil)
	assert.Equal(t, 0, m.Examples)
	assert.Equal(t, 0.0, m.Accuracy)
}

func TestRegressionMetricsMAE(t *testing.T) {
	m := RegressionMetrics([]float64{210, 200, 195}, []float64{212, 196, 195})
	assert.Equal(t, 3, m.Examples)
	assert.InDelta(t, 2.0, m.MAE, 1e-9)
}

func TestRegressionMetricsLengthMismatch(t *testing.T) {
	m := RegressionMetrics([]float64{210}, []float64{212, 196})
	assert.Equal(t, 0.0, m.MAE)
}
