package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ModelVariant distinguishes the two ensemble members
type ModelVariant string

const (
	VariantBase        ModelVariant = "base"
	VariantMarketAware ModelVariant = "market"
)

// ModelType identifies the trainer that produced an artifact
type ModelType string

const (
	ModelTypeLogistic ModelType = "logistic"
	ModelTypeRidge    ModelType = "ridge"
)

// ValidationMetrics summarizes holdout performance captured at training time
type ValidationMetrics struct {
	Examples   int     `json:"examples"`
	Accuracy   float64 `json:"accuracy"`
	LogLoss    float64 `json:"log_loss"`
	Brier      float64 `json:"brier"`
	MAE        float64 `json:"mae,omitempty"`
	TrainSize  int     `json:"train_size"`
	TotalMass  float64 `json:"total_weight_mass"`
}

// FeatureScaler holds train-set standardization statistics for ridge models
type FeatureScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// ModelArtifact is a learned weight vector with its feature ordering and
// training metadata. Immutable after training; one artifact per
// (sport, market, variant) per run.
type ModelArtifact struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	RunID        uuid.UUID         `db:"run_id" json:"run_id"`
	Sport        Sport             `db:"sport" json:"sport"`
	Market       Market            `db:"market" json:"market"`
	Variant      ModelVariant      `db:"variant" json:"variant"`
	ModelType    ModelType         `db:"model_type" json:"model_type"`
	Underdog     bool              `db:"underdog" json:"underdog"`
	Weights      []float64         `db:"-" json:"weights"`
	FeatureNames []string          `db:"-" json:"feature_names"`
	Scaler       *FeatureScaler    `db:"-" json:"scaler,omitempty"`
	Bias         float64           `db:"-" json:"bias,omitempty"`
	Sigma        float64           `db:"-" json:"sigma,omitempty"`
	Seasons      []int             `db:"-" json:"seasons"`
	Validation   ValidationMetrics `db:"-" json:"validation"`
	Calibration  *CalibrationCurve `db:"-" json:"calibration,omitempty"`
	TrainedAt    time.Time         `db:"trained_at" json:"trained_at"`
}

// Payload serializes the artifact body for key-value storage
func (a *ModelArtifact) Payload() (json.RawMessage, error) {
	return json.Marshal(a)
}

// ArtifactFromPayload deserializes a stored artifact body
func ArtifactFromPayload(data json.RawMessage) (*ModelArtifact, error) {
	artifact := &ModelArtifact{}
	if err := json.Unmarshal(data, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}
