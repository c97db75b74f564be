package user

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "user-management-service/internal/domain/user"
	apperrors "user-management-service/pkg/errors"
)

// Snapshot is the set of user fields checked before any write.
type Snapshot struct {
	Name  string `validate:"notblank"`
	Email string `validate:"notblank,email"`
	Age   *int   `validate:"required,min=0,max=150"`
}

// SnapshotOf captures the validated fields of u.
func SnapshotOf(u *domain.User) Snapshot {
	age := u.Age
	return Snapshot{Name: u.Name, Email: u.Email, Age: &age}
}

// Rules checks user field constraints. It is safe for concurrent use.
type Rules struct {
	validate *validator.Validate
}

// NewRules creates the user validation rule set.
// It panics if a custom rule cannot be registered.
func NewRules() *Rules {
	v := validator.New()
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return &Rules{validate: v}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Violations returns one message per violated field, in field order.
// An empty result means the snapshot is valid.
func (r *Rules) Violations(s Snapshot) []string {
	err := r.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, violationMessage(e))
	}
	return messages
}

// Validate returns a *errors.ValidationError carrying every violation, or nil.
func (r *Rules) Validate(s Snapshot) error {
	if messages := r.Violations(s); len(messages) > 0 {
		return apperrors.NewValidationError(messages...)
	}
	return nil
}

// violationMessage converts a single field error into a human-readable message.
func violationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "notblank":
		return fmt.Sprintf("%s cannot be blank", e.Field())
	case "required":
		return fmt.Sprintf("%s cannot be null", e.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
