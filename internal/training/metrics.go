package training

import (
	"math"

	"github.com/yourusername/sharpline/internal/models"
)

// ValPrediction pairs a model output with its observed outcome on the
// validation slice; the calibration engine consumes these
type ValPrediction struct {
	Prob  float64
	Label float64
}

// ClassificationMetrics summarizes validation performance of a probability
// model
func ClassificationMetrics(preds []ValPrediction) models.ValidationMetrics {
	m := models.ValidationMetrics{Examples: len(preds)}
	if len(preds) == 0 {
		return m
	}

	correct := 0
	logLoss, brier := 0.0, 0.0
	for _, p := range preds {
		predicted := 0.0
		if p.Prob >= 0.5 {
			predicted = 1.0
		}
		if predicted == p.Label {
			correct++
		}
		clamped := math.Min(math.Max(p.Prob, 1e-12), 1-1e-12)
		logLoss += -(p.Label*math.Log(clamped) + (1-p.Label)*math.Log(1-clamped))
		diff := p.Prob - p.Label
		brier += diff * diff
	}

	n := float64(len(preds))
	m.Accuracy = float64(correct) / n
	m.LogLoss = logLoss / n
	m.Brier = brier / n
	return m
}

// RegressionMetrics summarizes validation performance of a continuous model
func RegressionMetrics(predictions, targets []float64) models.ValidationMetrics {
	m := models.ValidationMetrics{Examples: len(predictions)}
	if len(predictions) == 0 || len(predictions) != len(targets) {
		return m
	}
	mae := 0.0
	for i := range predictions {
		mae += math.Abs(predictions[i] - targets[i])
	}
	m.MAE = mae / float64(len(predictions))
	return m
}
