package repository

import (
	"fmt"
	"time"

	"github.com/yourusername/sharpline/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game       GameRepository
	Odds       OddsRepository
	Artifact   ArtifactRepository
	Prediction PredictionRepository
	Result     ResultRepository
}

// NewRepositories creates and returns all repository implementations. Game
// reads go through an in-memory cache because feature building and replay
// re-read the same seasons many times per run.
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:       NewCachedGameRepository(NewPostgresGameRepository(db), 10*time.Minute),
		Odds:       NewPostgresOddsRepository(db),
		Artifact:   NewPostgresArtifactRepository(db),
		Prediction: NewPostgresPredictionRepository(db),
		Result:     NewPostgresResultRepository(db),
	}, nil
}
