package user

import (
	"fmt"
	"time"
)

// MinAge and MaxAge bound the accepted age of a user, both inclusive.
const (
	MinAge = 0
	MaxAge = 150
)

// User represents a user entity in the system.
type User struct {
	ID        int64     // ID is assigned by the store on insert; 0 until persisted
	Name      string    // Name is the full name of the user
	Email     string    // Email is the contact address of the user
	Age       int       // Age in years, within [MinAge, MaxAge]
	CreatedAt time.Time // CreatedAt is set once at construction and never changed
}

// NewUser creates an unpersisted user stamped with the given creation time.
func NewUser(name, email string, age int, createdAt time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: createdAt,
	}
}

// IsPersisted reports whether the store has assigned an identifier.
func (u *User) IsPersisted() bool {
	return u.ID != 0
}

// Clone returns an independent copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}

func (u *User) String() string {
	return fmt.Sprintf("User{id=%d, name='%s', email='%s', age=%d, createdAt=%s}",
		u.ID, u.Name, u.Email, u.Age, u.CreatedAt.Format(time.DateTime))
}
