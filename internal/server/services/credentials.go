// Package services contains the business logic of the credential core.
// This file implements CredentialService: registration, login, and
// password reset.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"authcore/internal/common"
	"authcore/internal/dbx"
	"authcore/internal/server/auth"
	"authcore/internal/server/models"
	"authcore/internal/server/repositories/storemanager"
)

// CredentialService verifies and mutates user credentials:
// - Register: create a user with a fresh salt and password digest
// - Login: verify a password and mint a session token
// - ResetPassword: replace the digest after verifying the old password
type CredentialService struct {
	db     *sql.DB
	stores storemanager.StoreManager
	signer *auth.TokenSigner
}

// NewCredentialService constructs a CredentialService over the given
// database handle, store manager, and token signer.
func NewCredentialService(db *sql.DB, stores storemanager.StoreManager, signer *auth.TokenSigner) *CredentialService {
	return &CredentialService{db: db, stores: stores, signer: signer}
}

// Register creates a new user from email and password. The password must
// match its confirmation, and the email must not be taken. The user row
// and its salt row are written inside one transaction, so a failed salt
// insert rolls the user back.
func (s *CredentialService) Register(ctx context.Context, email, password, confirmPassword string) (string, error) {

	if password != confirmPassword {
		return "", fmt.Errorf("passwords do not match: %w", common.ErrValidation)
	}

	userRepo := s.stores.Users(s.db)

	_, err := userRepo.FindByEmail(ctx, email)
	if err == nil {
		return "", fmt.Errorf("user already exists: %w", common.ErrAlreadyExists)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", common.ErrInternal
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return "", common.ErrInternal
	}

	digest := hex.EncodeToString(auth.HashPassword([]byte(password), []byte(salt)))

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.stores.Users(tx).Create(ctx, &models.User{
			Email:          email,
			PasswordDigest: digest,
		})
		if err != nil {
			return err
		}

		_, err = s.stores.Salts(tx).Create(ctx, &models.Salt{
			UserID: user.ID,
			Salt:   salt,
		})
		return err
	})
	if err != nil {
		return "", common.ErrInternal
	}

	return "Registration successful", nil
}

// Login verifies the password against the stored digest and, on success,
// mints a signed session token, persists it, and returns the raw token
// string.
func (s *CredentialService) Login(ctx context.Context, email, password string) (string, error) {

	user, salt, err := s.findUserAndSalt(ctx, email)
	if err != nil {
		return "", err
	}

	if !s.checkDigest(user.PasswordDigest, password, salt.Salt) {
		return "", fmt.Errorf("invalid password: %w", common.ErrInvalidCredentials)
	}

	token, err := s.signer.Issue(user.ID, user.Email)
	if err != nil {
		return "", common.ErrInternal
	}

	expiresAt := time.Now().Add(s.signer.Validity())
	_, err = s.stores.Tokens(s.db).Create(ctx, &models.SessionToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// ResetPassword replaces the stored digest after verifying the old
// password. The existing salt is reused; salts are never rotated. Sessions
// issued before the reset stay valid, so callers that want them gone must
// follow up with a logout.
func (s *CredentialService) ResetPassword(ctx context.Context, email, oldPassword, newPassword, confirmNewPassword string) (string, error) {

	if newPassword != confirmNewPassword {
		return "", fmt.Errorf("new passwords do not match: %w", common.ErrValidation)
	}

	user, salt, err := s.findUserAndSalt(ctx, email)
	if err != nil {
		return "", err
	}

	if !s.checkDigest(user.PasswordDigest, oldPassword, salt.Salt) {
		return "", fmt.Errorf("invalid old password: %w", common.ErrInvalidCredentials)
	}

	newDigest := hex.EncodeToString(auth.HashPassword([]byte(newPassword), []byte(salt.Salt)))

	if err := s.stores.Users(s.db).UpdateDigest(ctx, user.ID, newDigest); err != nil {
		return "", common.ErrInternal
	}

	return "Password reset successful", nil
}

// findUserAndSalt resolves the user by email and the salt by user id. A
// user without a salt row signals a data-consistency defect between the
// two stores and is reported distinctly.
func (s *CredentialService) findUserAndSalt(ctx context.Context, email string) (*models.User, *models.Salt, error) {
	user, err := s.stores.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, fmt.Errorf("user not found: %w", common.ErrNotFound)
		}
		return nil, nil, common.ErrInternal
	}

	salt, err := s.stores.Salts(s.db).FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, fmt.Errorf("salt not found for user: %w", common.ErrNotFound)
		}
		return nil, nil, common.ErrInternal
	}

	return user, salt, nil
}

// checkDigest recomputes the digest for the candidate password and
// compares it to the stored hex digest in constant time.
func (s *CredentialService) checkDigest(storedDigest, password, salt string) bool {
	candidate := hex.EncodeToString(auth.HashPassword([]byte(password), []byte(salt)))
	return subtle.ConstantTimeCompare([]byte(storedDigest), []byte(candidate)) == 1
}
