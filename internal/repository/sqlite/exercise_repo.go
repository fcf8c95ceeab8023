package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"exercise-api/internal/domain"
	"exercise-api/internal/repository"
	"exercise-api/pkg/logger"
)

// sqliteExerciseRepository implements repository.ExerciseRepository.
type sqliteExerciseRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewExerciseRepository creates a new Exercise repository backed by SQLite.
func NewExerciseRepository(db *sql.DB, log logger.Logger) repository.ExerciseRepository {
	return &sqliteExerciseRepository{db: db, logger: log}
}

func (r *sqliteExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (name, description, difficulty, is_public, owner_id)
		 VALUES (?, ?, ?, ?, ?)`,
		exercise.Name, exercise.Description, exercise.Difficulty,
		boolToInt(exercise.IsPublic), exercise.OwnerID,
	)
	if err != nil {
		r.logger.Error("failed to insert exercise", map[string]interface{}{"error": err.Error()})
		return 0, repository.ErrCreateFailed
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, repository.ErrCreateFailed
	}
	return id, nil
}

func (r *sqliteExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, difficulty, is_public, owner_id
		 FROM exercises WHERE id = ?`, id)

	exercise, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		r.logger.Error("failed to query exercise", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, err
	}
	return exercise, nil
}

func (r *sqliteExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	query, args := compileFilter(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list exercises", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	defer rows.Close()

	exercises := make([]domain.Exercise, 0)
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *sqliteExerciseRepository) Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	// Only name, description and difficulty are reachable through this path.
	// is_public and owner_id never appear in the SET clause.
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Difficulty != nil {
		sets = append(sets, "difficulty = ?")
		args = append(args, *update.Difficulty)
	}

	if len(sets) > 0 {
		args = append(args, id)
		result, err := r.db.ExecContext(ctx,
			"UPDATE exercises SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			r.logger.Error("failed to update exercise", map[string]interface{}{"id": id, "error": err.Error()})
			return nil, repository.ErrUpdateFailed
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, repository.ErrUpdateFailed
		}
		if affected == 0 {
			return nil, repository.ErrNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *sqliteExerciseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete exercise", map[string]interface{}{"id": id, "error": err.Error()})
		return repository.ErrDeleteFailed
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return repository.ErrDeleteFailed
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// compileFilter turns the typed predicates of an ExerciseFilter into a SQL
// query and its arguments. Mirrors ExerciseFilter.Matches and
// ExerciseFilter.Sort; the two must stay in agreement.
func compileFilter(filter repository.ExerciseFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, name, description, difficulty, is_public, owner_id FROM exercises WHERE `)

	args := make([]interface{}, 0, 4)
	if filter.ViewerID != nil {
		sb.WriteString(`(is_public = 1 OR owner_id = ?)`)
		args = append(args, *filter.ViewerID)
	} else {
		sb.WriteString(`is_public = 1`)
	}

	if filter.Name != "" {
		sb.WriteString(` AND LOWER(name) LIKE ?`)
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Description != "" {
		sb.WriteString(` AND LOWER(description) LIKE ?`)
		args = append(args, "%"+strings.ToLower(filter.Description)+"%")
	}
	if filter.Difficulty != nil {
		sb.WriteString(` AND difficulty = ?`)
		args = append(args, *filter.Difficulty)
	}

	// Ascending id is always the final key so equal rows keep a stable order.
	if filter.SortBy == repository.SortByDifficulty {
		if filter.SortOrder == repository.SortDesc {
			sb.WriteString(` ORDER BY difficulty DESC, id ASC`)
		} else {
			sb.WriteString(` ORDER BY difficulty ASC, id ASC`)
		}
	} else {
		sb.WriteString(` ORDER BY id ASC`)
	}

	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExercise(row rowScanner) (*domain.Exercise, error) {
	var exercise domain.Exercise
	var isPublic int
	err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Description,
		&exercise.Difficulty,
		&isPublic,
		&exercise.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	exercise.IsPublic = isPublic != 0
	return &exercise, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
