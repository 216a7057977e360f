package models

import "time"

// User is an identity record. PasswordDigest holds the hex-encoded PBKDF2
// digest of the password, never the plaintext.
type User struct {
	ID             string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}
