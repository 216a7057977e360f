// Package users provides the PostgreSQL-backed store for identity records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"authcore/internal/common"
	"authcore/internal/dbx"
	"authcore/internal/server/models"

	"github.com/google/uuid"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. The id is generated here so dependent rows
// (salt, session tokens) can reference it within the same transaction.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	user.ID = uuid.NewString()

	query :=
		`INSERT INTO users (id, email, password_digest)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordDigest).Scan(&user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FindByEmail returns the user with the given email (exact, case-sensitive
// match). Absent rows map to common.ErrNotFound.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_digest, created_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordDigest, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FindByID returns the user with the given id, or common.ErrNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_digest, created_at FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordDigest, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// UpdateDigest replaces the stored password digest for the user.
func (r *PostgresRepository) UpdateDigest(ctx context.Context, userID string, digest string) error {
	query :=
		`UPDATE users SET password_digest = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, digest)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
