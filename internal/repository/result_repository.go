package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

// PostgresResultRepository implements ResultRepository for PostgreSQL
type PostgresResultRepository struct {
	db *database.DB
}

// NewPostgresResultRepository creates a new backtest result repository
func NewPostgresResultRepository(db *database.DB) ResultRepository {
	return &PostgresResultRepository{db: db}
}

// Create inserts a backtest result
func (r *PostgresResultRepository) Create(ctx context.Context, result *models.BacktestResult) error {
	payload, err := result.Payload()
	if err != nil {
		return fmt.Errorf("failed to serialize backtest result: %w", err)
	}

	query := `
		INSERT INTO backtest_results (id, run_id, sport, market, start_date, end_date,
			total_bets, roi, ece, production_ready, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.GetPool().Exec(ctx, query,
		result.ID, result.RunID, result.Sport, result.Market, result.StartDate, result.EndDate,
		result.TotalBets, result.ROI, result.ECE, result.ProductionReady, payload, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create backtest result: %w", err)
	}

	return nil
}

// GetByID retrieves a backtest result by ID
func (r *PostgresResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestResult, error) {
	query := `SELECT payload FROM backtest_results WHERE id = $1`

	var payload json.RawMessage
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest result: %w", err)
	}

	return models.ResultFromPayload(payload)
}

// GetLatest retrieves the most recent result for a sport and market
func (r *PostgresResultRepository) GetLatest(ctx context.Context, sport models.Sport, market models.Market) (*models.BacktestResult, error) {
	query := `
		SELECT payload FROM backtest_results
		WHERE sport = $1 AND market = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payload json.RawMessage
	err := r.db.GetPool().QueryRow(ctx, query, sport, market).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest backtest result: %w", err)
	}

	return models.ResultFromPayload(payload)
}

// GetByRunID retrieves every result tied to a training run
func (r *PostgresResultRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error) {
	query := `SELECT payload FROM backtest_results WHERE run_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results by run: %w", err)
	}
	defer rows.Close()

	var results []*models.BacktestResult
	for rows.Next() {
		var payload json.RawMessage
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan backtest result: %w", err)
		}
		result, err := models.ResultFromPayload(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode backtest result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}
