package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-service/internal/adapter/cache"
	domain "user-management-service/internal/domain/user"
	apperrors "user-management-service/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func setupCachedRepo(t *testing.T) (*UserRepository, *MockRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	dbRepo := new(MockRepository)
	repo := NewUserRepository(dbRepo, cache.NewRedisUserCache(client, time.Minute, log), log)
	return repo, dbRepo, mr
}

func storedUser() *domain.User {
	return &domain.User{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 30, CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func TestUserRepository_GetByID_ReadThrough(t *testing.T) {
	repo, dbRepo, mr := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(1)).Return(storedUser(), nil).Once()

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, mr.Exists("user:1"))

	second, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.Name, second.Name)

	dbRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestUserRepository_GetByID_AbsentIsNotCached(t *testing.T) {
	repo, dbRepo, mr := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(2)).Return(nil, nil)

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("user:2"))
}

func TestUserRepository_GetByID_CacheDownFallsBack(t *testing.T) {
	repo, dbRepo, mr := setupCachedRepo(t)
	ctx := context.Background()
	mr.Close()

	dbRepo.On("GetByID", ctx, int64(1)).Return(storedUser(), nil)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "John Doe", got.Name)
}

func TestUserRepository_GetByID_StorageError(t *testing.T) {
	repo, dbRepo, _ := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(1)).Return(nil, apperrors.NewStorageError("get user", errors.New("boom")))

	got, err := repo.GetByID(ctx, 1)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsStorage(err))
}

func TestUserRepository_UpdateInvalidates(t *testing.T) {
	repo, dbRepo, mr := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(1)).Return(storedUser(), nil).Once()
	_, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("user:1"))

	changed := storedUser()
	changed.Name = "New"
	dbRepo.On("Update", ctx, changed).Return(changed, nil)

	updated, err := repo.Update(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.False(t, mr.Exists("user:1"))
}

func TestUserRepository_UpdateMissKeepsNil(t *testing.T) {
	repo, dbRepo, _ := setupCachedRepo(t)
	ctx := context.Background()

	missing := storedUser()
	missing.ID = 99
	dbRepo.On("Update", ctx, missing).Return(nil, nil)

	updated, err := repo.Update(ctx, missing)
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserRepository_DeleteInvalidates(t *testing.T) {
	repo, dbRepo, mr := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, int64(1)).Return(storedUser(), nil).Once()
	_, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	dbRepo.On("Delete", ctx, int64(1)).Return(true, nil).Once()
	dbRepo.On("Delete", ctx, int64(1)).Return(false, nil).Once()

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists("user:1"))

	deleted, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserRepository_PassThrough(t *testing.T) {
	repo, dbRepo, _ := setupCachedRepo(t)
	ctx := context.Background()

	users := []domain.User{*storedUser()}
	dbRepo.On("GetAll", ctx).Return(users, nil)

	candidate := &domain.User{Name: "New", Email: "new@example.com", Age: 20}
	dbRepo.On("Save", ctx, candidate).Return(&domain.User{ID: 2, Name: "New", Email: "new@example.com", Age: 20}, nil)

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	saved, err := repo.Save(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.ID)

	dbRepo.AssertExpectations(t)
}
