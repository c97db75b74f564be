package user

import (
	"context"

	domain "user-management-service/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
// Absent users are reported as a nil result with a nil error.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// Repository defines the interface for user data access operations.
// Each call is one unit-of-work against the store.
type Repository interface {
	// GetByID returns nil, nil when no user matches.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetAll returns every user in store order.
	GetAll(ctx context.Context) ([]domain.User, error)
	// Save inserts u and returns it with the generated ID.
	Save(ctx context.Context, u *domain.User) (*domain.User, error)
	// Update returns nil, nil when no user matches; it never inserts.
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	// Delete reports false when no user matches.
	Delete(ctx context.Context, id int64) (bool, error)
}
