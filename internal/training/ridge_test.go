package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalExamples(n int) []Example {
	examples := make([]Example, n)
	for i := range examples {
		x := float64(i%10) - 4.5
		// Target moves linearly with the signal column around 210
		examples[i] = Example{
			Date:     ts(2025, 1, 1+i%25),
			Features: []float64{1.0, x},
			Label:    210.0 + 4.0*x,
		}
	}
	return examples
}

func TestTrainRidgeLearnsLinearTarget(t *testing.T) {
	examples := totalExamples(60)
	cfg := RidgeConfig{Iterations: 2000, LearningRate: 0.1, Lambda: 0.001, SigmaFloor: 6.0}
	model, err := TrainRidge(examples, uniformWeights(len(examples)), []string{"bias", "x"}, cfg)
	require.NoError(t, err)

	pred := model.Predict([]float64{1.0, 2.5})
	assert.InDelta(t, 220.0, pred, 2.0)
}

func TestTrainRidgeSigmaFloor(t *testing.T) {
	// A near-perfect linear fit leaves residual MAD well under the floor
	examples := totalExamples(60)
	cfg := RidgeConfig{Iterations: 2000, LearningRate: 0.1, Lambda: 0.001, SigmaFloor: 6.0}
	model, err := TrainRidge(examples, uniformWeights(len(examples)), []string{"bias", "x"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 6.0, model.Sigma)
}

func TestTrainRidgeZeroVarianceColumn(t *testing.T) {
	examples := []Example{
		{Date: ts(2025, 1, 1), Features: []float64{1.0, 3.0}, Label: 200},
		{Date: ts(2025, 1, 2), Features: []float64{1.0, 3.0}, Label: 210},
		{Date: ts(2025, 1, 3), Features: []float64{1.0, 3.0}, Label: 205},
	}
	model, err := TrainRidge(examples, uniformWeights(3), []string{"bias", "flat"}, DefaultRidgeConfig())
	require.NoError(t, err)
	// Constant columns standardize to zero; the bias carries the mean
	assert.InDelta(t, 205.0, model.Predict([]float64{1.0, 3.0}), 1.0)
}

func TestProbOverAtTheLine(t *testing.T) {
	model := &RidgeModel{
		Weights: []float64{0},
		Scaler:  scalerModel(scaler{mean: []float64{0}, std: []float64{1}}),
		Bias:    210.0,
		Sigma:   6.0,
	}
	p := model.ProbOver([]float64{0}, 210.0)
	assert.InDelta(t, 0.5, p, 1e-6)

	assert.Greater(t, model.ProbOver([]float64{0}, 205.0), 0.5)
	assert.Less(t, model.ProbOver([]float64{0}, 215.0), 0.5)
}

func TestNormalCDFSymmetry(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-7)
	assert.InDelta(t, 1.0, NormalCDF(1.0)+NormalCDF(-1.0), 1e-7)
	assert.InDelta(t, 0.8413, NormalCDF(1.0), 1e-4)
	assert.InDelta(t, 0.9772, NormalCDF(2.0), 1e-4)
}
