package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"archive-backend/internal/shared/storage/db"
)

// SQLiteRepo implements Repo on the embedded store.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) ready() error {
	if r == nil || r.DB == nil {
		return db.ErrUninitialized
	}
	return nil
}

// Create inserts a new user; a duplicate username maps to ErrUsernameTaken.
func (r *SQLiteRepo) Create(ctx context.Context, user User) error {
	if err := r.ready(); err != nil {
		return err
	}
	const query = `
INSERT INTO users (id, username, password_hash, full_name, role, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByUsername returns the user with the exact username.
func (r *SQLiteRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	if err := r.ready(); err != nil {
		return User{}, err
	}
	const query = `
SELECT id, username, password_hash, full_name, role, created_at
FROM users
WHERE username = ?
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// List returns all users.
func (r *SQLiteRepo) List(ctx context.Context) ([]User, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	const query = `
SELECT id, username, password_hash, full_name, role, created_at
FROM users
ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.FullName,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

// Count returns the total number of users.
func (r *SQLiteRepo) Count(ctx context.Context) (int, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ Repo = (*SQLiteRepo)(nil)
