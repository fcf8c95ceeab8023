package service

import (
	"context"
	"testing"

	"exercise-api/internal/domain"
	"exercise-api/internal/repository"
	"exercise-api/internal/repository/memory"
	"exercise-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExerciseService() ExerciseService {
	store := memory.NewStore()
	return NewExerciseService(store.Exercises(), logger.Nop())
}

func TestExerciseServiceCreate(t *testing.T) {
	svc := newExerciseService()
	ctx := context.Background()

	exercise, err := svc.Create(ctx, 42, CreateExerciseInput{
		Name:        "Pushups",
		Description: "Upper body",
		Difficulty:  2,
		IsPublic:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), exercise.ID)
	assert.Equal(t, int64(42), exercise.OwnerID)
	assert.True(t, exercise.IsPublic)

	fetched, err := svc.GetByID(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, exercise, fetched)
}

func TestExerciseServiceGetByIDNotFound(t *testing.T) {
	svc := newExerciseService()

	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestExerciseServiceUpdate(t *testing.T) {
	svc := newExerciseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateExerciseInput{
		Name:        "Squats",
		Description: "Lower body",
		Difficulty:  3,
		IsPublic:    false,
	})
	require.NoError(t, err)

	name := "Front squats"
	difficulty := 4
	updated, err := svc.Update(ctx, created.ID, domain.ExerciseUpdate{
		Name:       &name,
		Difficulty: &difficulty,
	})
	require.NoError(t, err)

	assert.Equal(t, "Front squats", updated.Name)
	assert.Equal(t, "Lower body", updated.Description)
	assert.Equal(t, 4, updated.Difficulty)

	// Ownership and visibility survive every update.
	assert.Equal(t, created.OwnerID, updated.OwnerID)
	assert.Equal(t, created.IsPublic, updated.IsPublic)
}

func TestExerciseServiceUpdateNotFound(t *testing.T) {
	svc := newExerciseService()

	name := "anything"
	_, err := svc.Update(context.Background(), 123, domain.ExerciseUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestExerciseServiceDelete(t *testing.T) {
	svc := newExerciseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateExerciseInput{
		Name: "Plank", Description: "Core", Difficulty: 2, IsPublic: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrExerciseNotFound)
}

func TestExerciseServiceListPassesFilterThrough(t *testing.T) {
	store := memory.NewStore()
	svc := NewExerciseService(store.Exercises(), logger.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateExerciseInput{Name: "A", Description: "x", Difficulty: 1, IsPublic: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, CreateExerciseInput{Name: "B", Description: "y", Difficulty: 2, IsPublic: false})
	require.NoError(t, err)

	public, err := svc.List(ctx, repository.ExerciseFilter{})
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := svc.List(ctx, repository.ExerciseFilter{}.WithViewer(2))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
