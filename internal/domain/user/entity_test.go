package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUser_IsNotPersisted(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	u := NewUser("John Doe", "john@example.com", 30, created)

	assert.False(t, u.IsPersisted())
	assert.Equal(t, int64(0), u.ID)
	assert.Equal(t, created, u.CreatedAt)
}

func TestUser_Clone(t *testing.T) {
	u := &User{ID: 7, Name: "John Doe", Email: "john@example.com", Age: 30}

	c := u.Clone()
	c.Name = "Jane Doe"

	assert.True(t, c.IsPersisted())
	assert.Equal(t, "John Doe", u.Name)
	assert.Equal(t, u.ID, c.ID)
}

func TestUser_String(t *testing.T) {
	u := &User{
		ID:        1,
		Name:      "Test",
		Email:     "test@example.com",
		Age:       25,
		CreatedAt: time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC),
	}

	assert.Equal(t, "User{id=1, name='Test', email='test@example.com', age=25, createdAt=2024-05-01 10:30:15}", u.String())
}
