package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

const errScanPrediction = "failed to scan prediction: %w"

const insertPredictionQuery = `
	INSERT INTO predictions (id, game_id, run_id, market, side, probability,
		raw_base, raw_market, calibrated, features, predicted_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Insert stores a single prediction
func (r *PostgresPredictionRepository) Insert(ctx context.Context, prediction *models.Prediction) error {
	_, err := r.db.GetPool().Exec(ctx, insertPredictionQuery,
		prediction.ID, prediction.GameID, prediction.RunID, prediction.Market, prediction.Side,
		prediction.Probability, prediction.RawBase, prediction.RawMarket, prediction.Calibrated,
		prediction.Features, prediction.PredictedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// InsertBatch stores predictions in one round trip
func (r *PostgresPredictionRepository) InsertBatch(ctx context.Context, predictions []*models.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range predictions {
		batch.Queue(insertPredictionQuery,
			p.ID, p.GameID, p.RunID, p.Market, p.Side, p.Probability,
			p.RawBase, p.RawMarket, p.Calibrated, p.Features, p.PredictedAt,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range predictions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch insert predictions: %w", err)
		}
	}

	return nil
}

// GetByGameID retrieves every prediction for a game, newest first
func (r *PostgresPredictionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error) {
	query := `
		SELECT id, game_id, run_id, market, side, probability,
		       raw_base, raw_market, calibrated, features, predicted_at
		FROM predictions
		WHERE game_id = $1
		ORDER BY predicted_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		p := &models.Prediction{}
		err := rows.Scan(
			&p.ID, &p.GameID, &p.RunID, &p.Market, &p.Side, &p.Probability,
			&p.RawBase, &p.RawMarket, &p.Calibrated, &p.Features, &p.PredictedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanPrediction, err)
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}
