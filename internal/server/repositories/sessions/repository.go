// Package sessions declares the repository contract for session rows in
// persistent storage.
package sessions

import (
	"context"
	"time"

	"github.com/avdeev-d/gallerykeep/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// sessions. Tokens are opaque and globally unique; expired rows are treated
// as absent by Find.
type Repository interface {
	// Create stores a new session for userID with an expiry of now+validity.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error

	// Find looks up a session by its opaque token and returns its metadata.
	// Implementations return a not-found error when the token is absent.
	// Expiry is enforced by the caller against ExpiresAt.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session by its token. Deleting a non-existent token
	// is not an error.
	Delete(ctx context.Context, token string) error
}
