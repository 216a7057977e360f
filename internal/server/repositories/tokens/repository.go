package tokens

import (
	"context"

	"authcore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.SessionToken) (*models.SessionToken, error)
	// Find returns the row for the exact token string regardless of its
	// revoked state.
	Find(ctx context.Context, token string) (*models.SessionToken, error)
	// FindActive returns the row for the exact token string only if it has
	// not been revoked.
	FindActive(ctx context.Context, token string) (*models.SessionToken, error)
	FindAllByUserID(ctx context.Context, userID string) ([]*models.SessionToken, error)
	MarkRevoked(ctx context.Context, id string) error
}
