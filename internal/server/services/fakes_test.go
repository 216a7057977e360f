package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"authcore/internal/common"
	"authcore/internal/dbx"
	"authcore/internal/logging"
	"authcore/internal/server/models"
	saltsrepo "authcore/internal/server/repositories/salts"
	tokensrepo "authcore/internal/server/repositories/tokens"
	usersrepo "authcore/internal/server/repositories/users"
)

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// ---- in-memory stores ----
//
// The fakes ignore the DBTX handle: transactional behavior is exercised
// against sqlmock expectations, not replayed here.

type memUsers struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	creates   int
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.creates++
	user.ID = fmt.Sprintf("u-%d", m.creates)
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return user, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateDigest(ctx context.Context, userID string, digest string) error {
	u, ok := m.byID[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordDigest = digest
	return nil
}

type memSalts struct {
	byUserID map[string]*models.Salt

	createErr error
	creates   int
}

func newMemSalts() *memSalts {
	return &memSalts{byUserID: map[string]*models.Salt{}}
}

func (m *memSalts) Create(ctx context.Context, salt *models.Salt) (*models.Salt, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.creates++
	salt.ID = fmt.Sprintf("s-%d", m.creates)
	salt.CreatedAt = time.Now()
	m.byUserID[salt.UserID] = salt
	return salt, nil
}

func (m *memSalts) FindByUserID(ctx context.Context, userID string) (*models.Salt, error) {
	s, ok := m.byUserID[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return s, nil
}

type memTokens struct {
	rows []*models.SessionToken

	createErr error
	revokeErr error
}

func newMemTokens() *memTokens {
	return &memTokens{}
}

func (m *memTokens) Create(ctx context.Context, token *models.SessionToken) (*models.SessionToken, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	token.ID = fmt.Sprintf("t-%d", len(m.rows)+1)
	token.CreatedAt = time.Now()
	m.rows = append(m.rows, token)
	return token, nil
}

func (m *memTokens) Find(ctx context.Context, tokenString string) (*models.SessionToken, error) {
	for _, t := range m.rows {
		if t.Token == tokenString {
			return t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memTokens) FindActive(ctx context.Context, tokenString string) (*models.SessionToken, error) {
	for _, t := range m.rows {
		if t.Token == tokenString && !t.Revoked {
			return t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memTokens) FindAllByUserID(ctx context.Context, userID string) ([]*models.SessionToken, error) {
	var result []*models.SessionToken
	for _, t := range m.rows {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *memTokens) MarkRevoked(ctx context.Context, id string) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	for _, t := range m.rows {
		if t.ID == id {
			t.Revoked = true
			return nil
		}
	}
	return common.ErrNotFound
}

type memStores struct {
	u *memUsers
	s *memSalts
	t *memTokens
}

func newMemStores() *memStores {
	return &memStores{u: newMemUsers(), s: newMemSalts(), t: newMemTokens()}
}

func (m *memStores) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *memStores) Salts(db dbx.DBTX) saltsrepo.Repository       { return m.s }
func (m *memStores) Tokens(db dbx.DBTX) tokensrepo.Repository     { return m.t }
func (m *memStores) RunMigrations(context.Context, *sql.DB) error { return nil }
