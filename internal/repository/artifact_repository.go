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

// PostgresArtifactRepository implements ArtifactRepository for PostgreSQL.
// The artifact body lives in a jsonb payload column; the scalar columns exist
// for lookup only.
type PostgresArtifactRepository struct {
	db *database.DB
}

// NewPostgresArtifactRepository creates a new artifact repository
func NewPostgresArtifactRepository(db *database.DB) ArtifactRepository {
	return &PostgresArtifactRepository{db: db}
}

// Create inserts an immutable model artifact
func (r *PostgresArtifactRepository) Create(ctx context.Context, artifact *models.ModelArtifact) error {
	payload, err := artifact.Payload()
	if err != nil {
		return fmt.Errorf("failed to serialize artifact: %w", err)
	}

	query := `
		INSERT INTO model_artifacts (id, run_id, sport, market, variant, underdog, model_type, payload, trained_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.GetPool().Exec(ctx, query,
		artifact.ID, artifact.RunID, artifact.Sport, artifact.Market,
		artifact.Variant, artifact.Underdog, artifact.ModelType, payload, artifact.TrainedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}

	return nil
}

// GetByID retrieves an artifact by ID
func (r *PostgresArtifactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ModelArtifact, error) {
	query := `SELECT payload FROM model_artifacts WHERE id = $1`

	var payload json.RawMessage
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}

	return models.ArtifactFromPayload(payload)
}

// GetLatest retrieves the most recently created artifact for a configuration.
// Missing artifacts are a distinct error because the caller's remedy is to
// train, not to retry.
func (r *PostgresArtifactRepository) GetLatest(ctx context.Context, sport models.Sport, market models.Market, variant models.ModelVariant, underdog bool) (*models.ModelArtifact, error) {
	query := `
		SELECT payload FROM model_artifacts
		WHERE sport = $1 AND market = $2 AND variant = $3 AND underdog = $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payload json.RawMessage
	err := r.db.GetPool().QueryRow(ctx, query, sport, market, variant, underdog).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("%s/%s/%s: %w", sport, market, variant, models.ErrMissingArtifact)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest artifact: %w", err)
	}

	return models.ArtifactFromPayload(payload)
}

// GetByRunID retrieves every artifact a training run produced
func (r *PostgresArtifactRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.ModelArtifact, error) {
	query := `SELECT payload FROM model_artifacts WHERE run_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts by run: %w", err)
	}
	defer rows.Close()

	var artifacts []*models.ModelArtifact
	for rows.Next() {
		var payload json.RawMessage
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifact, err := models.ArtifactFromPayload(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode artifact: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}

	return artifacts, rows.Err()
}
