package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when an insert breaches the username
// uniqueness constraint.
var ErrUsernameTaken = errors.New("username already taken")

// Repo defines persistence operations for users.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
}
