// Package services contains server-side business logic. This file implements
// UserService, which handles signup, email verification, login (session
// issuance) and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"database/sql"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/server/auth"
	"github.com/avdeev-d/gallerykeep/internal/server/config"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService provides authentication-related operations:
//   - SignUp: create unverified users and hand back their verification id
//   - Verify: flip is_verified by verification id
//   - Login: verify credentials and mint a session token
//   - Logout: revoke a session (idempotent)
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessionTTL  time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessionTTL:  cfg.SessionTTL,
	}
}

// SignUp hashes the password under a fresh salt and inserts an unverified
// Reader. It returns the verification id to embed in the verification link.
// Role is never caller-controlled; every signup starts as a Reader.
func (s *UserService) SignUp(ctx context.Context, email, password string) (string, error) {
	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:          email,
		Role:           models.RoleReader,
		PasswordHash:   hash,
		Salt:           salt,
		VerificationID: uuid.New().String(),
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return user.VerificationID, nil
}

// Verify marks the user holding verificationID as verified and returns the
// verified email address.
func (s *UserService) Verify(ctx context.Context, verificationID string) (string, error) {
	repo := s.repomanager.Users(s.db)
	email, err := repo.Verify(ctx, verificationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", common.ErrInternal
	}
	return email, nil
}

// Login verifies the password against the stored credentials and, on
// success, issues a fresh session token. Session creation happens strictly
// after password verification. An unknown email and a wrong password both
// yield ErrUnauthorized; a malformed stored salt is an integrity fault and
// surfaces as an internal error instead.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	userRepo := s.repomanager.Users(s.db)

	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	ok, err := auth.VerifyPassword(user.Salt, user.PasswordHash, password)
	if err != nil {
		return "", common.ErrInternal
	}
	if !ok {
		return "", common.ErrUnauthorized
	}

	token := uuid.New().String()

	sessionRepo := s.repomanager.Sessions(s.db)
	if err := sessionRepo.Create(ctx, user.ID, token, s.sessionTTL); err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Logout deletes the session row for token. Unknown tokens are not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	repo := s.repomanager.Sessions(s.db)
	if err := repo.Delete(ctx, token); err != nil {
		return common.ErrInternal
	}
	return nil
}
