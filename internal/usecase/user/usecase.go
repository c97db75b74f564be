package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "user-management-service/internal/domain/user"
	"user-management-service/pkg/logger"
)

// Service implements the business logic for user management operations.
// It validates candidates before delegating to the repository and holds no
// state between calls.
type Service struct {
	repo  Repository       // Repository for data access
	rules *Rules           // Field constraints checked before every write
	log   *zap.Logger      // Logger for structured logging
	now   func() time.Time // Clock used to stamp new users
}

var _ Usecase = (*Service)(nil)

// New creates a new instance of Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{
		repo:  r,
		rules: NewRules(),
		log:   log,
		now:   defaultNow,
	}
}

// defaultNow truncates to microseconds, the precision PostgreSQL keeps.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// CreateUser validates a new user and persists it.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.rules.Validate(Snapshot{Name: in.Name, Email: in.Email, Age: in.Age}); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Save(ctx, domain.NewUser(in.Name, in.Email, *in.Age, s.now()))
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user created", zap.Int64("id", created.ID))
	return created, nil
}

// GetUserByID retrieves a user by ID. It returns nil, nil when the user does not exist.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

// GetAllUsers retrieves every user.
func (s *Service) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces name, email and age of an existing user.
// It returns nil, nil without writing when the user does not exist.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		log.Error("failed to load user for update", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if existing == nil {
		log.Warn("user not found for update", zap.Int64("id", in.ID))
		return nil, nil
	}

	changed := existing.Clone()
	changed.Name = in.Name
	changed.Email = in.Email

	// An absent age has no place on the entity, so it is checked on the request
	snapshot := Snapshot{Name: in.Name, Email: in.Email, Age: in.Age}
	if in.Age != nil {
		changed.Age = *in.Age
		snapshot = SnapshotOf(changed)
	}

	if err := s.rules.Validate(snapshot); err != nil {
		log.Warn("validate failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Update(ctx, changed)
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user by ID. It reports false when the user does not exist.
func (s *Service) DeleteUser(ctx context.Context, id int64) (bool, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("deleting user", zap.Int64("id", id))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	return deleted, nil
}
