package service

import (
	"context"
	"errors"

	"exercise-api/internal/domain"
	"exercise-api/internal/repository"
	"exercise-api/pkg/logger"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrCreateFailed     = errors.New("failed to create exercise")
	ErrUpdateFailed     = errors.New("failed to modify exercise")
	ErrDeleteFailed     = errors.New("failed to delete exercise")
)

// CreateExerciseInput carries the validated fields of a new exercise. The
// owner is supplied separately from the authenticated caller, never from the
// request body.
type CreateExerciseInput struct {
	Name        string
	Description string
	Difficulty  int
	IsPublic    bool
}

// ExerciseService is the command service over exercise records plus the
// listing read path.
type ExerciseService interface {
	Create(ctx context.Context, ownerID int64, input CreateExerciseInput) (*domain.Exercise, error)
	// GetByID returns ErrExerciseNotFound when no such record exists; any
	// other error is a storage failure.
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error)
	// Update applies the partial change. IsPublic and OwnerID are immutable
	// post-creation and cannot travel through this path.
	Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error)
	Delete(ctx context.Context, id int64) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	logger       logger.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, log logger.Logger) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo, logger: log}
}

func (s *exerciseService) Create(ctx context.Context, ownerID int64, input CreateExerciseInput) (*domain.Exercise, error) {
	exercise := &domain.Exercise{
		Name:        input.Name,
		Description: input.Description,
		Difficulty:  input.Difficulty,
		IsPublic:    input.IsPublic,
		OwnerID:     ownerID,
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		s.logger.Error("exercise create failed", map[string]interface{}{"ownerId": ownerID, "error": err.Error()})
		return nil, ErrCreateFailed
	}
	exercise.ID = id
	return exercise, nil
}

func (s *exerciseService) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, filter)
}

func (s *exerciseService) Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		s.logger.Error("exercise update failed", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, ErrUpdateFailed
	}
	return exercise, nil
}

func (s *exerciseService) Delete(ctx context.Context, id int64) error {
	err := s.exerciseRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		s.logger.Error("exercise delete failed", map[string]interface{}{"id": id, "error": err.Error()})
		return ErrDeleteFailed
	}
	return nil
}
