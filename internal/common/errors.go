// Package common defines shared constants and sentinel errors used across
// the credential and session layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Validation / registration errors.
	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")

	// Credential errors (password/digest mismatch).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
