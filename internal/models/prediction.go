package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Prediction represents an ensemble prediction for one game and market
type Prediction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	GameID      uuid.UUID       `db:"game_id" json:"game_id" validate:"required"`
	RunID       uuid.UUID       `db:"run_id" json:"run_id"`
	Market      Market          `db:"market" json:"market" validate:"required"`
	Side        string          `db:"side" json:"side"`
	Probability float64         `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	RawBase     float64         `db:"raw_base" json:"raw_base"`
	RawMarket   *float64        `db:"raw_market" json:"raw_market,omitempty"`
	Calibrated  bool            `db:"calibrated" json:"calibrated"`
	Features    json.RawMessage `db:"features" json:"features,omitempty"`
	PredictedAt time.Time       `db:"predicted_at" json:"predicted_at"`
}

// MeetsThreshold checks if the probability meets the given confidence floor
func (p *Prediction) MeetsThreshold(threshold float64) bool {
	return p.Probability >= threshold
}
