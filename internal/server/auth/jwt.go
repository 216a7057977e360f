package auth

import (
	"errors"
	"time"

	"authcore/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the registered JWT claims plus the subject user id and
// email of the authenticated identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenSigner mints and verifies HS256 session tokens. The signing secret
// is injected at construction; nothing in this package reads configuration
// or the environment at call time.
type TokenSigner struct {
	secret   []byte
	validity time.Duration
}

// NewTokenSigner returns a signer that issues tokens expiring validity
// after issuance.
func NewTokenSigner(secret []byte, validity time.Duration) *TokenSigner {
	return &TokenSigner{secret: secret, validity: validity}
}

// Validity returns the configured token lifetime.
func (s *TokenSigner) Validity() time.Duration {
	return s.validity
}

// Issue mints a signed token for the given user id and email, with
// issued-at set to now and expiry set to now+validity.
func (s *TokenSigner) Issue(userID string, email string) (string, error) {
	now := time.Now()

	// The jti claim keeps two logins in the same second from minting
	// byte-identical tokens; the session store requires token uniqueness.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify parses and validates the token string. It returns
// common.ErrTokenExpired for expired tokens and common.ErrInvalidToken for
// anything else that fails signature or structural validation.
func (s *TokenSigner) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
