package training

import (
	"fmt"

	"github.com/yourusername/sharpline/internal/models"
)

// ScoreArtifact evaluates a stored artifact on one raw feature vector and
// returns a probability. For classification artifacts the line is ignored;
// for totals artifacts it is the posted line the probability is taken over.
func ScoreArtifact(a *models.ModelArtifact, features []float64, line float64) (float64, error) {
	if a == nil {
		return 0, fmt.Errorf("artifact is required")
	}
	if len(features) != len(a.Weights) {
		return 0, fmt.Errorf("feature vector has %d values, artifact expects %d", len(features), len(a.Weights))
	}

	switch a.ModelType {
	case models.ModelTypeLogistic:
		model := &LogisticModel{Weights: a.Weights, FeatureNames: a.FeatureNames}
		return model.Predict(features), nil
	case models.ModelTypeRidge:
		if a.Scaler == nil {
			return 0, fmt.Errorf("ridge artifact %s has no scaler", a.ID)
		}
		model := &RidgeModel{
			Weights:      a.Weights,
			FeatureNames: a.FeatureNames,
			Scaler:       *a.Scaler,
			Bias:         a.Bias,
			Sigma:        a.Sigma,
		}
		return model.ProbOver(features, line), nil
	default:
		return 0, fmt.Errorf("unknown model type %q", a.ModelType)
	}
}
