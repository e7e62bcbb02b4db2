// Package galleries declares the repository contract for gallery rows.
package galleries

import (
	"context"

	"github.com/avdeev-d/gallerykeep/internal/server/models"
)

// Repository defines operations over the galleries table. Deletion is a
// status flip; rows are never removed once images reference them.
type Repository interface {
	// Create inserts a public gallery owned by ownerID and returns its id.
	Create(ctx context.Context, ownerID int64, name string) (int64, error)

	// ListTiles returns listing aggregates for all non-deleted galleries,
	// newest first. Galleries without live images report ImageCount == 0
	// and an empty ExamplePath.
	ListTiles(ctx context.Context) ([]models.GalleryTile, error)

	// Get returns a non-deleted gallery row; soft-deleted or unknown ids
	// yield a not-found error.
	Get(ctx context.Context, id int64) (*models.Gallery, error)

	// SoftDelete flips the gallery status to deleted. Already-deleted
	// galleries stay deleted; the operation is idempotent.
	SoftDelete(ctx context.Context, id int64) error

	// Rename updates the gallery name.
	Rename(ctx context.Context, id int64, name string) error
}
