// Package repository provides PostgreSQL-backed data access for games, odds,
// model artifacts, predictions, and backtest results.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sharpline/internal/models"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	Create(ctx context.Context, game *models.GameRecord) error
	CreateBatch(ctx context.Context, games []*models.GameRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameRecord, error)
	GetBySportAndDateRange(ctx context.Context, sport models.Sport, start, end time.Time) ([]*models.GameRecord, error)
	GetBySportAndSeasons(ctx context.Context, sport models.Sport, seasons []int) ([]*models.GameRecord, error)
	Update(ctx context.Context, game *models.GameRecord) error
}

// OddsRepository defines the interface for odds line data access
type OddsRepository interface {
	Upsert(ctx context.Context, odds *models.OddsLine) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.OddsLine, error)
}

// ArtifactRepository defines model artifact persistence. Artifacts are
// immutable; the latest one for a configuration is resolved by creation
// order.
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *models.ModelArtifact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ModelArtifact, error)
	GetLatest(ctx context.Context, sport models.Sport, market models.Market, variant models.ModelVariant, underdog bool) (*models.ModelArtifact, error)
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.ModelArtifact, error)
}

// PredictionRepository defines prediction persistence
type PredictionRepository interface {
	Insert(ctx context.Context, prediction *models.Prediction) error
	InsertBatch(ctx context.Context, predictions []*models.Prediction) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error)
}

// ResultRepository defines backtest result persistence
type ResultRepository interface {
	Create(ctx context.Context, result *models.BacktestResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestResult, error)
	GetLatest(ctx context.Context, sport models.Sport, market models.Market) (*models.BacktestResult, error)
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error)
}
