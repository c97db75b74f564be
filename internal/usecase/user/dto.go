package user

// CreateUserRequest represents the request payload for creating a new user.
// Age is a pointer so that a missing value can be told apart from zero.
type CreateUserRequest struct {
	Name  string
	Email string
	Age   *int
}

// UpdateUserRequest represents the request payload for updating an existing user.
// All three fields replace the stored values.
type UpdateUserRequest struct {
	ID    int64
	Name  string
	Email string
	Age   *int
}

// IntPtr returns a pointer to v. Front ends use it to fill request ages.
func IntPtr(v int) *int {
	return &v
}
