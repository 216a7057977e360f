package models

import "time"

// Salt is the per-user randomness mixed into password hashing. One row per
// user (unique constraint on UserID); created at registration and never
// rotated.
type Salt struct {
	ID        string
	UserID    string
	Salt      string
	CreatedAt time.Time
}
