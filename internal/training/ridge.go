package training

import (
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/sharpline/internal/models"
)

// madToSigma converts a median absolute deviation to a Gaussian standard
// deviation estimate
const madToSigma = 1.4826

// RidgeConfig holds hyperparameters for the continuous-target trainer
type RidgeConfig struct {
	Iterations   int
	LearningRate float64
	Lambda       float64
	// SigmaFloor prevents overconfident over/under probabilities on thin
	// residual samples
	SigmaFloor float64
}

// DefaultRidgeConfig mirrors the production defaults for totals models
func DefaultRidgeConfig() RidgeConfig {
	return RidgeConfig{Iterations: 500, LearningRate: 0.05, Lambda: 0.01, SigmaFloor: 6.0}
}

// RidgeModel predicts a continuous target (combined score) with a spread
// estimate for converting point predictions into over/under probabilities
type RidgeModel struct {
	Weights      []float64
	FeatureNames []string
	Scaler       models.FeatureScaler
	Bias         float64
	Sigma        float64
}

// TrainRidge standardizes features with train-set statistics, fits weights by
// gradient descent on weighted MSE with an L2 penalty, fits a scalar bias as
// the mean residual, and derives sigma from the median absolute deviation of
// training residuals.
func TrainRidge(examples []Example, sampleWeights []float64, featureNames []string, cfg RidgeConfig) (*RidgeModel, error) {
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

	scaler := fitScaler(examples, dim)
	scaled := make([][]float64, len(examples))
	for i, ex := range examples {
		scaled[i] = scaler.apply(ex.Features)
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
			err := dot(theta, scaled[i]) - ex.Label
			w := sampleWeights[i]
			for j, x := range scaled[i] {
				gradient[j] += w * err * x
			}
		}
		step := cfg.LearningRate / totalMass
		for j := range theta {
			theta[j] -= step * (gradient[j] + cfg.Lambda*theta[j])
		}
	}

	// Bias absorbs the mean residual left after the standardized fit
	residuals := make([]float64, len(examples))
	meanResidual := 0.0
	for i, ex := range examples {
		residuals[i] = ex.Label - dot(theta, scaled[i])
		meanResidual += residuals[i]
	}
	meanResidual /= float64(len(examples))

	for i := range residuals {
		residuals[i] = math.Abs(residuals[i] - meanResidual)
	}
	sigma := madToSigma * median(residuals)
	if sigma < cfg.SigmaFloor {
		sigma = cfg.SigmaFloor
	}

	return &RidgeModel{
		Weights:      theta,
		FeatureNames: featureNames,
		Scaler:       scalerModel(scaler),
		Bias:         meanResidual,
		Sigma:        sigma,
	}, nil
}

// Predict returns the point estimate for one raw (unscaled) feature vector
func (m *RidgeModel) Predict(features []float64) float64 {
	scaled := make([]float64, len(features))
	for j, x := range features {
		std := 1.0
		mean := 0.0
		if j < len(m.Scaler.Std) {
			std = m.Scaler.Std[j]
			mean = m.Scaler.Mean[j]
		}
		scaled[j] = (x - mean) / std
	}
	return dot(m.Weights, scaled) + m.Bias
}

// ProbOver returns P(target > line) = 1 - Phi((line - prediction) / sigma)
func (m *RidgeModel) ProbOver(features []float64, line float64) float64 {
	sigma := m.Sigma
	if sigma <= 0 {
		sigma = 1.0
	}
	return 1.0 - NormalCDF((line-m.Predict(features))/sigma)
}

type scaler struct {
	mean []float64
	std  []float64
}

// fitScaler computes train-only mean and std per column; zero-variance
// columns get a +1 floor so standardization never divides by zero
func fitScaler(examples []Example, dim int) scaler {
	s := scaler{mean: make([]float64, dim), std: make([]float64, dim)}
	n := float64(len(examples))
	for _, ex := range examples {
		for j, x := range ex.Features {
			s.mean[j] += x
		}
	}
	for j := range s.mean {
		s.mean[j] /= n
	}
	for _, ex := range examples {
		for j, x := range ex.Features {
			d := x - s.mean[j]
			s.std[j] += d * d
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j] / n)
		if s.std[j] == 0 {
			s.std[j] = 1.0
		}
	}
	return s
}

func (s scaler) apply(features []float64) []float64 {
	out := make([]float64, len(features))
	for j, x := range features {
		out[j] = (x - s.mean[j]) / s.std[j]
	}
	return out
}

func scalerModel(s scaler) models.FeatureScaler {
	return models.FeatureScaler{Mean: s.mean, Std: s.std}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
