package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BucketStat aggregates wager outcomes inside one confidence bucket
type BucketStat struct {
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Bets     int     `json:"bets"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"win_rate"`
	AvgProb  float64 `json:"avg_prob"`
	ROI      float64 `json:"roi"`
}

// RangeStat aggregates wager outcomes across an odds or spread range
type RangeStat struct {
	Label   string  `json:"label"`
	Bets    int     `json:"bets"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
	ROI     float64 `json:"roi"`
}

// SeasonStat aggregates wager outcomes per season
type SeasonStat struct {
	Season  int     `json:"season"`
	Bets    int     `json:"bets"`
	Wins    int     `json:"wins"`
	ROI     float64 `json:"roi"`
	ECE     float64 `json:"ece"`
}

// BacktestResult represents aggregated performance of one backtest run.
// Recomputed per invocation; never mutated after persistence.
type BacktestResult struct {
	ID                 uuid.UUID    `db:"id" json:"id"`
	RunID              uuid.UUID    `db:"run_id" json:"run_id"`
	Sport              Sport        `db:"sport" json:"sport"`
	Market             Market       `db:"market" json:"market"`
	StartDate          time.Time    `db:"start_date" json:"start_date"`
	EndDate            time.Time    `db:"end_date" json:"end_date"`
	TotalBets          int          `db:"total_bets" json:"total_bets"`
	WinningBets        int          `db:"winning_bets" json:"winning_bets"`
	WinRate            float64      `db:"win_rate" json:"win_rate"`
	TotalStaked        float64      `db:"total_staked" json:"total_staked"`
	NetProfit          float64      `db:"net_profit" json:"net_profit"`
	ROI                float64      `db:"roi" json:"roi"`
	ECE                float64      `db:"ece" json:"ece"`
	CalibrationSkipped bool         `db:"calibration_skipped" json:"calibration_skipped"`
	SkippedOdds        int          `db:"skipped_odds" json:"skipped_odds"`
	SkippedPredictions int          `db:"skipped_predictions" json:"skipped_predictions"`
	Buckets            []BucketStat `db:"-" json:"buckets"`
	OddsRanges         []RangeStat  `db:"-" json:"odds_ranges"`
	Seasons            []SeasonStat `db:"-" json:"seasons"`
	ProductionReady    bool         `db:"production_ready" json:"production_ready"`
	FailureReasons     []string     `db:"-" json:"failure_reasons"`
	CreatedAt          time.Time    `db:"created_at" json:"created_at"`
}

// Payload serializes the full result for persistence alongside scalar columns
func (r *BacktestResult) Payload() (json.RawMessage, error) {
	return json.Marshal(r)
}

// ResultFromPayload deserializes a stored backtest result body
func ResultFromPayload(data json.RawMessage) (*BacktestResult, error) {
	result := &BacktestResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, err
	}
	return result, nil
}
