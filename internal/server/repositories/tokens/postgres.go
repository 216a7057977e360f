// Package tokens provides the PostgreSQL-backed store for session tokens.
// Rows are soft-revoked, never deleted, so the session history survives
// logout.
package tokens

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

// Create inserts a new session token row.
func (r *PostgresRepository) Create(ctx context.Context, token *models.SessionToken) (*models.SessionToken, error) {

	token.ID = uuid.NewString()

	query :=
		`INSERT INTO session_tokens (id, user_id, token, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		token.ID, token.UserID, token.Token, token.ExpiresAt).Scan(&token.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) scanToken(row *sql.Row) (*models.SessionToken, error) {
	token := &models.SessionToken{}
	var expires sql.NullTime

	err := row.Scan(&token.ID, &token.UserID, &token.Token, &token.CreatedAt, &expires, &token.Revoked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if expires.Valid {
		token.ExpiresAt = &expires.Time
	}

	return token, nil
}

// Find returns the row for the exact token string, revoked or not.
func (r *PostgresRepository) Find(ctx context.Context, tokenString string) (*models.SessionToken, error) {
	query :=
		`SELECT id, user_id, token, created_at, expires_at, revoked FROM session_tokens
		 WHERE token = $1
		 `

	return r.scanToken(r.db.QueryRowContext(ctx, query, tokenString))
}

// FindActive returns the row for the exact token string only when
// revoked = false.
func (r *PostgresRepository) FindActive(ctx context.Context, tokenString string) (*models.SessionToken, error) {
	query :=
		`SELECT id, user_id, token, created_at, expires_at, revoked FROM session_tokens
		 WHERE token = $1 AND revoked = FALSE
		 `

	return r.scanToken(r.db.QueryRowContext(ctx, query, tokenString))
}

// FindAllByUserID returns every session token row owned by the user,
// regardless of revoked state.
func (r *PostgresRepository) FindAllByUserID(ctx context.Context, userID string) ([]*models.SessionToken, error) {
	query :=
		`SELECT id, user_id, token, created_at, expires_at, revoked FROM session_tokens
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SessionToken
	for rows.Next() {
		token := &models.SessionToken{}
		var expires sql.NullTime
		if err := rows.Scan(&token.ID, &token.UserID, &token.Token, &token.CreatedAt, &expires, &token.Revoked); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if expires.Valid {
			token.ExpiresAt = &expires.Time
		}
		result = append(result, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// MarkRevoked sets revoked = true on a single row. Revocation is terminal;
// there is no inverse operation.
func (r *PostgresRepository) MarkRevoked(ctx context.Context, id string) error {
	query :=
		`UPDATE session_tokens SET revoked = TRUE
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
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
