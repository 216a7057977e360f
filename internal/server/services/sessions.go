// This file implements SessionService: bearer-header authorization checks
// and the logout revocation cascade.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"authcore/internal/common"
	"authcore/internal/logging"
	"authcore/internal/server/models"
	"authcore/internal/server/repositories/storemanager"
)

// SessionService answers authorization checks against stored session
// tokens and revokes sessions on logout.
type SessionService struct {
	db     *sql.DB
	stores storemanager.StoreManager
	logger logging.Logger
}

// NewSessionService constructs a SessionService over the given database
// handle and store manager.
func NewSessionService(db *sql.DB, stores storemanager.StoreManager, logger logging.Logger) *SessionService {
	return &SessionService{db: db, stores: stores, logger: logger.With("module", "sessions")}
}

// Authorize checks a bearer-scheme authorization header value against the
// session store and resolves the owning user. It never returns an error:
// malformed or absent credentials, unknown or revoked tokens, and store
// failures all yield (nil, false), so nothing leaks to unauthenticated
// callers.
func (s *SessionService) Authorize(ctx context.Context, headerValue string) (*models.User, bool) {

	if !strings.HasPrefix(headerValue, common.BearerPrefix) {
		return nil, false
	}

	raw := headerValue[len(common.BearerPrefix):]
	if raw == "" {
		return nil, false
	}

	token, err := s.stores.Tokens(s.db).FindActive(ctx, raw)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "session lookup failed", "error", err)
		}
		return nil, false
	}

	user, err := s.stores.Users(s.db).FindByID(ctx, token.UserID)
	if err != nil {
		s.logger.Error(ctx, "user lookup failed for active session", "error", err, "user_id", token.UserID)
		return nil, false
	}

	return user, true
}

// Logout resolves the presented token to its owner and revokes every
// session token that owner has, active or not. Each row is updated
// individually: a crash mid-cascade leaves some sessions revoked and
// others not, and a retried logout completes the remainder (revocation
// is idempotent).
func (s *SessionService) Logout(ctx context.Context, tokenString string) (string, error) {

	tokenRepo := s.stores.Tokens(s.db)

	// Lookup is independent of revoked state: logging out with an
	// already-revoked token still re-runs the cascade for its owner.
	token, err := tokenRepo.Find(ctx, tokenString)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", fmt.Errorf("invalid token: %w", common.ErrInvalidToken)
		}
		return "", common.ErrInternal
	}

	all, err := tokenRepo.FindAllByUserID(ctx, token.UserID)
	if err != nil {
		return "", common.ErrInternal
	}

	for _, t := range all {
		if err := tokenRepo.MarkRevoked(ctx, t.ID); err != nil {
			s.logger.Error(ctx, "revocation cascade interrupted", "error", err, "user_id", token.UserID, "token_id", t.ID)
			return "", common.ErrInternal
		}
	}

	s.logger.Info(ctx, "revoked all sessions for user", "user_id", token.UserID, "count", len(all))

	return "Logout successful", nil
}
