package cached

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-directory/internal/adapter/cache"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/usecase/user"
	"user-directory/pkg/logger"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
// Users never change after creation, so cached entries are only ever aged out by TTL.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

var _ user.Repository = (*CachedUserRepository)(nil)

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
// Cache failures are logged and the database answers instead.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, r.log)

	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	// Concurrent misses for the same id share one database read. The read runs
	// detached from the first caller so its cancellation does not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(strconv.FormatInt(id, 10), func() (any, error) {
		u, err := r.dbRepo.GetByID(loadCtx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(loadCtx, u); err != nil {
			log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
		}
		return u, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	u := res.Val.(*domain.User)
	if res.Shared {
		// Callers must not alias one another's result.
		cp := *u
		return &cp, nil
	}
	return u, nil
}

// ListAfter delegates to the DB repository.
func (r *CachedUserRepository) ListAfter(ctx context.Context, afterID, limit int64) ([]domain.User, error) {
	return r.dbRepo.ListAfter(ctx, afterID, limit)
}

// SearchByNamePrefix delegates to the DB repository.
func (r *CachedUserRepository) SearchByNamePrefix(ctx context.Context, prefix string, limit int64) ([]domain.User, error) {
	return r.dbRepo.SearchByNamePrefix(ctx, prefix, limit)
}
