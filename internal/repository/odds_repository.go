package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Upsert inserts or refreshes the odds line for a game. One line per
// (game, provider); later recordings replace earlier ones.
func (r *PostgresOddsRepository) Upsert(ctx context.Context, odds *models.OddsLine) error {
	query := `
		INSERT INTO odds_lines (game_id, provider, home_moneyline, away_moneyline,
			spread, home_spread_price, away_spread_price, total, over_price, under_price, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (game_id, provider) DO UPDATE SET
			home_moneyline = EXCLUDED.home_moneyline,
			away_moneyline = EXCLUDED.away_moneyline,
			spread = EXCLUDED.spread,
			home_spread_price = EXCLUDED.home_spread_price,
			away_spread_price = EXCLUDED.away_spread_price,
			total = EXCLUDED.total,
			over_price = EXCLUDED.over_price,
			under_price = EXCLUDED.under_price,
			recorded_at = EXCLUDED.recorded_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		odds.GameID, odds.Provider, odds.HomeMoneyline, odds.AwayMoneyline,
		odds.Spread, odds.HomeSpreadPrice, odds.AwaySpreadPrice,
		odds.Total, odds.OverPrice, odds.UnderPrice, odds.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert odds line: %w", err)
	}

	return nil
}

// GetByGameID retrieves the odds line for a game
func (r *PostgresOddsRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.OddsLine, error) {
	query := `
		SELECT game_id, provider, home_moneyline, away_moneyline,
		       spread, home_spread_price, away_spread_price, total, over_price, under_price, recorded_at
		FROM odds_lines
		WHERE game_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	odds := &models.OddsLine{}
	err := r.db.GetPool().QueryRow(ctx, query, gameID).Scan(
		&odds.GameID, &odds.Provider, &odds.HomeMoneyline, &odds.AwayMoneyline,
		&odds.Spread, &odds.HomeSpreadPrice, &odds.AwaySpreadPrice,
		&odds.Total, &odds.OverPrice, &odds.UnderPrice, &odds.RecordedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get odds line: %w", err)
	}

	return odds, nil
}
