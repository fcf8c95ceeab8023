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

// sqliteUserRepository implements repository.UserRepository.
type sqliteUserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewUserRepository creates a new User repository backed by SQLite.
func NewUserRepository(db *sql.DB, log logger.Logger) repository.UserRepository {
	return &sqliteUserRepository{db: db, logger: log}
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`,
		user.Username, user.PasswordHash,
	)
	if err != nil {
		// SQLite reports UNIQUE violations as a generic error; sniff the
		// message so callers can distinguish a taken username.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, repository.ErrDuplicate
		}
		r.logger.Error("failed to insert user", map[string]interface{}{"error": err.Error()})
		return 0, repository.ErrCreateFailed
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, repository.ErrCreateFailed
	}
	return id, nil
}

func (r *sqliteUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		r.logger.Error("failed to query user by username", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	return &user, nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE id = ?`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		r.logger.Error("failed to query user by id", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, err
	}
	return &user, nil
}
