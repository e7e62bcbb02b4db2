package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/repomanager"
)

// IdentityService maps an opaque session token to the authenticated user
// projection (id, email, role).
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager) *IdentityService {
	return &IdentityService{db: db, repomanager: m}
}

// Resolve looks up the session and loads the user it belongs to. A missing
// token and an expired-but-present row both yield ErrUnauthorized: expiry is
// lazy, rows past expires_at are treated as absent. Storage faults surface
// as internal errors, never as an authentication miss.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*models.User, error) {
	sessionRepo := s.repomanager.Sessions(s.db)

	session, err := sessionRepo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrUnauthorized
	}

	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// session points at a missing user; the row is useless
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	return user, nil
}
