package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0
	}
	return w
}

func TestTrainLogisticSeparableData(t *testing.T) {
	// bias + one signal column; positives cluster high, negatives low
	var examples []Example
	for i := 0; i < 40; i++ {
		x := 1.0 + float64(i%5)*0.1
		examples = append(examples, Example{Date: ts(2025, 1, 1+i%20), Features: []float64{1.0, x}, Label: 1})
		examples = append(examples, Example{Date: ts(2025, 1, 1+i%20), Features: []float64{1.0, -x}, Label: 0})
	}

	model, err := TrainLogistic(examples, uniformWeights(len(examples)), []string{"bias", "x"}, DefaultLogisticConfig())
	require.NoError(t, err)

	high := model.Predict([]float64{1.0, 1.2})
	low := model.Predict([]float64{1.0, -1.2})
	assert.Greater(t, high, 0.6)
	assert.Less(t, low, 0.4)
	assert.Greater(t, high, low)
}

func TestTrainLogisticDeterministic(t *testing.T) {
	examples := []Example{
		{Date: ts(2025, 1, 1), Features: []float64{1, 0.3}, Label: 1},
		{Date: ts(2025, 1, 2), Features: []float64{1, -0.2}, Label: 0},
		{Date: ts(2025, 1, 3), Features: []float64{1, 0.8}, Label: 1},
		{Date: ts(2025, 1, 4), Features: []float64{1, -0.5}, Label: 0},
	}
	weights := uniformWeights(len(examples))

	a, err := TrainLogistic(examples, weights, []string{"bias", "x"}, DefaultLogisticConfig())
	require.NoError(t, err)
	b, err := TrainLogistic(examples, weights, []string{"bias", "x"}, DefaultLogisticConfig())
	require.NoError(t, err)
	assert.Equal(t, a.Weights, b.Weights)
}

func TestPredictStrictlyInsideUnitInterval(t *testing.T) {
	model := &LogisticModel{Weights: []float64{1000, 1000}}
	p := model.Predict([]float64{1, 1})
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)

	model = &LogisticModel{Weights: []float64{-1000, -1000}}
	p = model.Predict([]float64{1, 1})
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestTrainLogisticInputValidation(t *testing.T) {
	_, err := TrainLogistic(nil, nil, nil, DefaultLogisticConfig())
	assert.Error(t, err)

	examples := []Example{{Features: []float64{1, 2}, Label: 1}}
	_, err = TrainLogistic(examples, []float64{1, 1}, nil, DefaultLogisticConfig())
	assert.Error(t, err, "weight count mismatch")

	ragged := []Example{
		{Features: []float64{1, 2}, Label: 1},
		{Features: []float64{1}, Label: 0},
	}
	_, err = TrainLogistic(ragged, uniformWeights(2), nil, DefaultLogisticConfig())
	assert.Error(t, err, "ragged feature vectors")

	_, err = TrainLogistic(examples, []float64{0}, nil, DefaultLogisticConfig())
	assert.Error(t, err, "zero weight mass")
}
