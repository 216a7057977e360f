// Package auth contains the cryptographic primitives of the credential
// core: the salted password digest function, salt generation, and the
// signed session token.
package auth

import (
	"crypto/sha512"

	"authcore/internal/common"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// pbkdf2Iterations and digestLength must never change without a
	// digest migration: stored digests are verified by recomputation.
	pbkdf2Iterations = 10000
	digestLength     = 64

	saltBytes = 16
)

// HashPassword derives a 64-byte digest from the password and salt using
// PBKDF2 with SHA-512. Deterministic: identical inputs always produce an
// identical digest. Empty inputs are accepted; policy checks belong to
// the caller.
func HashPassword(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, pbkdf2Iterations, digestLength, sha512.New)
}

// GenerateSalt returns a new per-user salt: 16 bytes from the secure RNG,
// hex-encoded. The hex string itself (not its decoded bytes) is what feeds
// HashPassword, so it is stored verbatim.
func GenerateSalt() (string, error) {
	return common.MakeRandHexString(saltBytes)
}
