package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/sharpline/internal/models"
)

// CachedGameRepository wraps a GameRepository with an in-memory read cache.
// Training and replay re-read the same season slices many times; writes
// invalidate everything since season and range keys overlap.
type CachedGameRepository struct {
	inner GameRepository
	cache *cache.Cache
}

// NewCachedGameRepository creates a caching wrapper with the given TTL
func NewCachedGameRepository(inner GameRepository, ttl time.Duration) GameRepository {
	return &CachedGameRepository{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

// Create writes through and invalidates cached reads
func (r *CachedGameRepository) Create(ctx context.Context, game *models.GameRecord) error {
	if err := r.inner.Create(ctx, game); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

// CreateBatch writes through and invalidates cached reads
func (r *CachedGameRepository) CreateBatch(ctx context.Context, games []*models.GameRecord) error {
	if err := r.inner.CreateBatch(ctx, games); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

// GetByID is not cached; single-row reads are cheap
func (r *CachedGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameRecord, error) {
	return r.inner.GetByID(ctx, id)
}

// GetBySportAndDateRange serves range reads from cache when fresh
func (r *CachedGameRepository) GetBySportAndDateRange(ctx context.Context, sport models.Sport, start, end time.Time) ([]*models.GameRecord, error) {
	key := fmt.Sprintf("range:%s:%s:%s", sport, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if cached, found := r.cache.Get(key); found {
		if games, ok := cached.([]*models.GameRecord); ok {
			return games, nil
		}
	}

	games, err := r.inner.GetBySportAndDateRange(ctx, sport, start, end)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, games)
	return games, nil
}

// GetBySportAndSeasons serves season reads from cache when fresh
func (r *CachedGameRepository) GetBySportAndSeasons(ctx context.Context, sport models.Sport, seasons []int) ([]*models.GameRecord, error) {
	key := fmt.Sprintf("seasons:%s:%v", sport, seasons)
	if cached, found := r.cache.Get(key); found {
		if games, ok := cached.([]*models.GameRecord); ok {
			return games, nil
		}
	}

	games, err := r.inner.GetBySportAndSeasons(ctx, sport, seasons)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, games)
	return games, nil
}

// Update writes through and invalidates cached reads
func (r *CachedGameRepository) Update(ctx context.Context, game *models.GameRecord) error {
	if err := r.inner.Update(ctx, game); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}
