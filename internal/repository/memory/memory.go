// Package memory provides in-memory, concurrency-safe implementations of the
// repository interfaces. They back the test suites and can serve local
// development without a database file.
package memory

import (
	"context"
	"sync"

	"exercise-api/internal/domain"
	"exercise-api/internal/repository"
)

// Store holds both repositories over one shared mutex so cross-table reads
// observe a consistent snapshot.
type Store struct {
	mu         sync.RWMutex
	users      map[int64]domain.User
	byUsername map[string]int64
	exercises  map[int64]domain.Exercise
	nextUserID int64
	nextExID   int64
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]domain.User),
		byUsername: make(map[string]int64),
		exercises:  make(map[int64]domain.Exercise),
		nextUserID: 1,
		nextExID:   1,
	}
}

// Users returns the store's repository.UserRepository view.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// Exercises returns the store's repository.ExerciseRepository view.
func (s *Store) Exercises() repository.ExerciseRepository { return (*exerciseRepo)(s) }

type userRepo Store

func (r *userRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return 0, repository.ErrDuplicate
	}
	id := r.nextUserID
	r.nextUserID++

	stored := *user
	stored.ID = id
	r.users[id] = stored
	r.byUsername[stored.Username] = id
	return id, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type exerciseRepo Store

func (r *exerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextExID
	r.nextExID++

	stored := *exercise
	stored.ID = id
	r.exercises[id] = stored
	return id, nil
}

func (r *exerciseRepo) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *exerciseRepo) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	r.mu.RLock()
	matched := make([]domain.Exercise, 0)
	for _, exercise := range r.exercises {
		if filter.Matches(exercise) {
			matched = append(matched, exercise)
		}
	}
	r.mu.RUnlock()

	filter.Sort(matched)
	return matched, nil
}

func (r *exerciseRepo) Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		exercise.Name = *update.Name
	}
	if update.Description != nil {
		exercise.Description = *update.Description
	}
	if update.Difficulty != nil {
		exercise.Difficulty = *update.Difficulty
	}
	r.exercises[id] = exercise
	return &exercise, nil
}

func (r *exerciseRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}
