// Package users declares the repository contract for user rows.
package users

import (
	"context"

	"github.com/avdeev-d/gallerykeep/internal/server/models"
)

// Repository defines operations over the users table. Users are created on
// signup and mutated only by the verification flow; rows are never removed.
type Repository interface {
	// Create inserts a new unverified Reader and fills in the generated id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the full user row, including credential columns.
	// Email comparison is case-sensitive as stored.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the identity projection of a user: id, email, role.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// Verify flips is_verified for the user holding verificationID and
	// returns that user's email. Unknown ids yield a not-found error.
	Verify(ctx context.Context, verificationID string) (string, error)
}
