package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-service/internal/domain/user"
	apperrors "user-management-service/pkg/errors"
)

// errNoRow aborts a transaction whose target row does not exist.
var errNoRow = errors.New("no matching row")

// UserGateway implements the Repository interface on top of GORM.
// Every call runs in its own session; writes are wrapped in a single
// transaction that is committed or rolled back before the call returns.
type UserGateway struct {
	db  *gorm.DB    // Store handle the per-call sessions are derived from
	log *zap.Logger // Structured logger for database operations
}

// NewUserGateway creates a new instance of UserGateway.
func NewUserGateway(db *gorm.DB, log *zap.Logger) *UserGateway {
	return &UserGateway{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"` // Assigned by the store
	Name      string    `gorm:"not null"`                 // User's full name
	Email     string    `gorm:"not null"`                 // User's email address
	Age       int       `gorm:"not null"`                 // User's age in years
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// AutoMigrate derives the users table from UserSchema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// session opens a fresh unit-of-work bound to ctx.
func (r *UserGateway) session(ctx context.Context) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true, Context: ctx})
}

// GetByID retrieves a user by primary key. It returns nil, nil when no row matches.
func (r *UserGateway) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.session(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, apperrors.NewStorageError(fmt.Sprintf("get user id=%d", id), err)
	}

	return toDomain(&model), nil
}

// GetAll retrieves every user row.
func (r *UserGateway) GetAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.session(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, apperrors.NewStorageError("get all users", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}

	return users, nil
}

// Save inserts a new user and returns it with the generated ID.
func (r *UserGateway) Save(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}
	if u.IsPersisted() {
		return nil, fmt.Errorf("user already persisted: id=%d", u.ID)
	}

	model := fromDomain(u)
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, apperrors.NewStorageError("save user", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// Update overwrites name, email and age of an existing user.
// It returns nil, nil without writing anything when the user does not exist.
func (r *UserGateway) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	var model UserSchema
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, u.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoRow
			}
			return err
		}

		model.Name = u.Name
		model.Email = u.Email
		model.Age = u.Age

		return tx.Model(&model).Select("name", "email", "age").Updates(&model).Error
	})
	if errors.Is(err, errNoRow) {
		r.log.Warn("user not found for update", zap.Int64("id", u.ID))
		return nil, nil
	}
	if err != nil {
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return nil, apperrors.NewStorageError(fmt.Sprintf("update user id=%d", u.ID), err)
	}

	r.log.Info("user updated in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// Delete removes a user by ID. It reports false when no row matches.
func (r *UserGateway) Delete(ctx context.Context, id int64) (bool, error) {
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoRow
			}
			return err
		}

		return tx.Delete(&model).Error
	})
	if errors.Is(err, errNoRow) {
		r.log.Warn("user not found for delete", zap.Int64("id", id))
		return false, nil
	}
	if err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return false, apperrors.NewStorageError(fmt.Sprintf("delete user id=%d", id), err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return true, nil
}

func fromDomain(u *user.User) UserSchema {
	return UserSchema{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Age:       m.Age,
		CreatedAt: m.CreatedAt,
	}
}
