package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

const errScanGame = "failed to scan game: %w"

// gameColumns selects every game column plus the joined odds line; odds
// columns are nullable because not every recorded game has pricing
const gameColumns = `
	g.id, g.sport, g.season, g.date, g.home_team, g.away_team,
	g.home_score, g.away_score, g.created_at, g.updated_at,
	o.provider, o.home_moneyline, o.away_moneyline,
	o.spread, o.home_spread_price, o.away_spread_price,
	o.total, o.over_price, o.under_price, o.recorded_at
`

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Create inserts a new game record
func (r *PostgresGameRepository) Create(ctx context.Context, game *models.GameRecord) error {
	query := `
		INSERT INTO games (id, sport, season, date, home_team, away_team, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.Sport, game.Season, game.Date, game.HomeTeam, game.AwayTeam,
		game.HomeScore, game.AwayScore,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// CreateBatch inserts game records in one round trip
func (r *PostgresGameRepository) CreateBatch(ctx context.Context, games []*models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}

	query := `
		INSERT INTO games (id, sport, season, date, home_team, away_team, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, game := range games {
		batch.Queue(query,
			game.ID, game.Sport, game.Season, game.Date, game.HomeTeam, game.AwayTeam,
			game.HomeScore, game.AwayScore,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range games {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch insert games: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a game with its odds line
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameRecord, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games g
		LEFT JOIN odds_lines o ON o.game_id = g.id
		WHERE g.id = $1
	`

	game, err := scanGame(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetBySportAndDateRange retrieves games within a date range, ascending
func (r *PostgresGameRepository) GetBySportAndDateRange(ctx context.Context, sport models.Sport, start, end time.Time) ([]*models.GameRecord, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games g
		LEFT JOIN odds_lines o ON o.game_id = g.id
		WHERE g.sport = $1 AND g.date >= $2 AND g.date <= $3
		ORDER BY g.date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date range: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

// GetBySportAndSeasons retrieves all games in the given seasons, ascending
func (r *PostgresGameRepository) GetBySportAndSeasons(ctx context.Context, sport models.Sport, seasons []int) ([]*models.GameRecord, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games g
		LEFT JOIN odds_lines o ON o.game_id = g.id
		WHERE g.sport = $1 AND g.season = ANY($2)
		ORDER BY g.date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport, seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by seasons: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

// Update writes final scores back to a game record
func (r *PostgresGameRepository) Update(ctx context.Context, game *models.GameRecord) error {
	query := `
		UPDATE games
		SET home_score = $2, away_score = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, game.ID, game.HomeScore, game.AwayScore)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*models.GameRecord, error) {
	game := &models.GameRecord{}
	var (
		provider   *string
		recordedAt *time.Time
		odds       models.OddsLine
	)

	err := row.Scan(
		&game.ID, &game.Sport, &game.Season, &game.Date, &game.HomeTeam, &game.AwayTeam,
		&game.HomeScore, &game.AwayScore, &game.CreatedAt, &game.UpdatedAt,
		&provider, &odds.HomeMoneyline, &odds.AwayMoneyline,
		&odds.Spread, &odds.HomeSpreadPrice, &odds.AwaySpreadPrice,
		&odds.Total, &odds.OverPrice, &odds.UnderPrice, &recordedAt,
	)
	if err != nil {
		return nil, err
	}

	if provider != nil {
		odds.GameID = game.ID
		odds.Provider = *provider
		if recordedAt != nil {
			odds.RecordedAt = *recordedAt
		}
		game.Odds = &odds
	}

	return game, nil
}

func collectGames(rows pgx.Rows) ([]*models.GameRecord, error) {
	var games []*models.GameRecord
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
