package memory

import (
	"context"
	"database/sql"

	"userapi/internal/model"
	"userapi/internal/repository"
)

// UserMemory is an in-process repository.UserRepository used when no database is configured.
// It is populated once at construction and never mutated, so it is safe for concurrent use.
type UserMemory struct {
	users map[string]model.User
}

// NewUserMemory creates a UserMemory holding the given users keyed by ID.
func NewUserMemory(users ...model.User) *UserMemory {
	m := &UserMemory{users: make(map[string]model.User, len(users))}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

var _ repository.UserRepository = (*UserMemory)(nil)

// FindByID mirrors the Postgres contract and reports a miss as sql.ErrNoRows.
func (r *UserMemory) FindByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}
