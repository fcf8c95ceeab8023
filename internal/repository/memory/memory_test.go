package memory

import (
	"context"
	"testing"

	"exercise-api/internal/domain"
	"exercise-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo(t *testing.T) {
	store := NewStore()
	users := store.Users()
	ctx := context.Background()

	id, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("lookup by username and id", func(t *testing.T) {
		byName, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		byID, err := users.GetByID(ctx, byName.ID)
		require.NoError(t, err)
		assert.Equal(t, byName, byID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = users.GetByID(ctx, 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestExerciseRepo(t *testing.T) {
	store := NewStore()
	exercises := store.Exercises()
	ctx := context.Background()

	id, err := exercises.Create(ctx, &domain.Exercise{
		Name: "Pushups", Description: "d", Difficulty: 2, IsPublic: true, OwnerID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	t.Run("ids are sequential", func(t *testing.T) {
		next, err := exercises.Create(ctx, &domain.Exercise{
			Name: "Squats", Description: "d", Difficulty: 3, IsPublic: false, OwnerID: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), next)
	})

	t.Run("update leaves visibility and owner alone", func(t *testing.T) {
		name := "Wide pushups"
		updated, err := exercises.Update(ctx, 1, domain.ExerciseUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Wide pushups", updated.Name)
		assert.True(t, updated.IsPublic)
		assert.Equal(t, int64(1), updated.OwnerID)
	})

	t.Run("update and delete report missing rows", func(t *testing.T) {
		name := "x"
		_, err := exercises.Update(ctx, 99, domain.ExerciseUpdate{Name: &name})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, exercises.Delete(ctx, 99), repository.ErrNotFound)
	})

	t.Run("list applies the filter", func(t *testing.T) {
		public, err := exercises.List(ctx, repository.ExerciseFilter{})
		require.NoError(t, err)
		require.Len(t, public, 1)
		assert.Equal(t, int64(1), public[0].ID)

		owned, err := exercises.List(ctx, repository.ExerciseFilter{}.WithViewer(2))
		require.NoError(t, err)
		assert.Len(t, owned, 2)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, exercises.Delete(ctx, 1))
		_, err := exercises.GetByID(ctx, 1)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
