package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-management-service/internal/adapter/cache"
	domain "user-management-service/internal/domain/user"
	"user-management-service/internal/usecase/user"
)

// UserRepository implements user.Repository with read-through caching of
// single users. Lists are never cached and every write invalidates the
// cached entry, so the store stays the source of truth.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	// Concurrent misses for the same ID share one database read
	result, err, _ := r.group.Do(cache.Key(id), func() (any, error) {
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil || u == nil {
			return u, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	if u == nil {
		return nil, nil
	}
	return u.Clone(), nil
}

// GetAll delegates to the DB repository.
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.GetAll(ctx)
}

// Save delegates to the DB repository.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Save(ctx, u)
}

// Update updates the user in DB and invalidates the cache.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	updated, err := r.dbRepo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	if updated != nil {
		r.invalidate(ctx, u.ID)
	}
	return updated, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		r.invalidate(ctx, id)
	}
	return deleted, nil
}

func (r *UserRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache", zap.Int64("id", id), zap.Error(err))
	}
}
