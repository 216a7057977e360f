package models

import "time"

// SessionToken is one authenticated login. Token is the signed credential
// string, unique across all sessions. Revocation is a soft state: rows are
// never deleted, and a revoked token never becomes active again.
type SessionToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt *time.Time
	Revoked   bool
}
