// Package guard intercepts inbound requests and admits only those carrying
// a valid, non-revoked bearer session token. It is the sole gate in front
// of protected handlers; it does no rate limiting and no auditing.
package guard

import (
	"context"
	"net/http"

	"authcore/internal/logging"
	"authcore/internal/server/models"
)

// Authorizer answers whether an authorization header value identifies an
// active session, and if so, whose.
type Authorizer interface {
	Authorize(ctx context.Context, headerValue string) (*models.User, bool)
}

type ctxKey string

const userKey ctxKey = "user"

// NewContext returns a child context carrying the authenticated user.
func NewContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user attached by the guard,
// if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// Guard is an HTTP middleware wrapping protected handlers.
type Guard struct {
	sessions Authorizer
	logger   logging.Logger
}

func New(sessions Authorizer, logger logging.Logger) *Guard {
	return &Guard{sessions: sessions, logger: logger.With("module", "guard")}
}

// Middleware rejects requests without a valid bearer credential with 401
// and otherwise passes them on with the resolved user in the request
// context. net/http canonicalizes header names while parsing, so the
// lookup covers both "authorization" and "Authorization" spellings.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		user, ok := g.sessions.Authorize(r.Context(), header)
		if !ok {
			g.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), user)))
	})
}
