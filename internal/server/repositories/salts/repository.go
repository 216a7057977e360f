package salts

import (
	"context"

	"authcore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, salt *models.Salt) (*models.Salt, error)
	FindByUserID(ctx context.Context, userID string) (*models.Salt, error)
}
