package repository

import (
	"context"
	"errors"

	"upgradedash/internal/model"
)

// ErrDuplicateUsername is returned by Create when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository defines data access for dashboard accounts.
type UserRepository interface {
	// FindByUsername returns a user by exact username. sql.ErrNoRows when absent.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID returns a user by primary key. sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Create inserts a new account and returns the stored row.
	// Returns ErrDuplicateUsername on a username conflict.
	Create(ctx context.Context, user *model.User) (*model.User, error)
}
