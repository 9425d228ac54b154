package memory

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/model"
)

func TestUserMemory_FindByID(t *testing.T) {
	repo := NewUserMemory(model.User{ID: "u1", Name: "Ada"})

	t.Run("found", func(t *testing.T) {
		u, err := repo.FindByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.Name)

		// Returned value is a copy.
		u.Name = "changed"
		again, err := repo.FindByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", again.Name)
	})

	t.Run("not found", func(t *testing.T) {
		u, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, u)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		u, err := repo.FindByID(ctx, "u1")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, u)
	})
}
