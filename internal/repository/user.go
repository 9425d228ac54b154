package repository

import (
	"context"

	"userapi/internal/model"
)

// UserRepository is read-only access to user records.
type UserRepository interface {
	// FindByID returns a user by its ID, or sql.ErrNoRows when none exists.
	FindByID(ctx context.Context, id string) (*model.User, error)
}
