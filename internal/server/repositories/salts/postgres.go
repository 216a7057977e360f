// Package salts provides the PostgreSQL-backed store for per-user password
// salts. The schema enforces one salt per user.
package salts

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

// Create inserts the salt row for a user. A second salt for the same user
// violates the unique constraint and surfaces as a db error.
func (r *PostgresRepository) Create(ctx context.Context, salt *models.Salt) (*models.Salt, error) {

	salt.ID = uuid.NewString()

	query :=
		`INSERT INTO salts (id, user_id, salt)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		salt.ID, salt.UserID, salt.Salt).Scan(&salt.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return salt, nil
}

// FindByUserID returns the salt row for the given user id, or
// common.ErrNotFound.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Salt, error) {
	query :=
		`SELECT id, user_id, salt, created_at FROM salts
		 WHERE user_id = $1
		 `

	salt := &models.Salt{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&salt.ID, &salt.UserID, &salt.Salt, &salt.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return salt, nil
}
