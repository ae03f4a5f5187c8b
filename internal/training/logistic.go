package training

import (
	"fmt"
	"math"
)

// LogisticConfig holds gradient-descent hyperparameters
type LogisticConfig struct {
	Iterations   int
	LearningRate float64
	Lambda       float64
}

// DefaultLogisticConfig mirrors the production defaults
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{Iterations: 500, LearningRate: 0.05, Lambda: 0.01}
}

// LogisticModel is a fitted weight vector. No implicit intercept: specs
// provide an explicit bias column.
type LogisticModel struct {
	Weights      []float64
	FeatureNames []string
}

// TrainLogistic fits a weighted L2-penalized logistic regression by batch
// gradient descent. Deterministic: no randomness anywhere, so identical
// inputs reproduce identical weights bit for bit.
func TrainLogistic(examples []Example, sampleWeights []float64, featureNames []string, cfg LogisticConfig) (*LogisticModel, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples")
	}
	if len(sampleWeights) != len(examples) {
		return nil, fmt.Errorf("weight count %d does not match example count %d", len(sampleWeights), len(examples))
	}
	dim := len(examples[0].Features)
	if dim == 0 {
		return nil, fmt.Errorf("zero-length feature vector")
	}
	for i, ex := range examples {
		if len(ex.Features) != dim {
			return nil, fmt.Errorf("example %d has %d features, want %d", i, len(ex.Features), dim)
		}
	}

	totalMass := 0.0
	for _, w := range sampleWeights {
		totalMass += w
	}
	if totalMass <= 0 {
		return nil, fmt.Errorf("total sample weight mass must be positive")
	}

	theta := make([]float64, dim)
	gradient := make([]float64, dim)

	for iter := 0; iter < cfg.Iterations; iter++ {
		for j := range gradient {
			gradient[j] = 0
		}
		for i, ex := range examples {
			err := sigmoid(dot(theta, ex.Features)) - ex.Label
			w := sampleWeights[i]
			for j, x := range ex.Features {
				gradient[j] += w * err * x
			}
		}
		step := cfg.LearningRate / totalMass
		for j := range theta {
			theta[j] -= step * (gradient[j] + cfg.Lambda*theta[j])
		}
	}

	return &LogisticModel{Weights: theta, FeatureNames: featureNames}, nil
}

// Predict returns the win probability for one feature vector, strictly
// inside (0, 1)
func (m *LogisticModel) Predict(features []float64) float64 {
	return sigmoid(dot(m.Weights, features))
}

// sigmoid with argument clamping that keeps the output strictly inside (0,1)
func sigmoid(z float64) float64 {
	if z > 30 {
		z = 30
	}
	if z < -30 {
		z = -30
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
