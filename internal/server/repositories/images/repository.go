// Package images declares the repository contract for the image pair rows:
// untouched originals and their display-ready modified copies.
package images

import (
	"context"

	"github.com/avdeev-d/gallerykeep/internal/server/models"
)

// Repository defines operations over the original_images and modified_images
// tables. The two inserts of an upload must run inside one transaction; the
// service layer owns that boundary.
type Repository interface {
	// InsertOriginal stores the untouched upload row and returns its id.
	InsertOriginal(ctx context.Context, userID, galleryID int64, filename, path string) (int64, error)

	// InsertModified stores the display copy owned by an original and
	// returns its id.
	InsertModified(ctx context.Context, userID, originalImageID int64, path, caption string) (int64, error)

	// ListByGallery returns the live (non-deleted) images of a gallery in
	// insertion order.
	ListByGallery(ctx context.Context, galleryID int64) ([]models.Image, error)

	// SoftDelete flips a modified image's status to deleted. Idempotent.
	SoftDelete(ctx context.Context, id int64) error

	// UpdateCaption replaces the caption and bumps modified_at.
	UpdateCaption(ctx context.Context, id int64, caption string) error
}
