package models

import (
	"fmt"
	"time"
)

// Status marks a row as live or soft-deleted. Soft-deleted rows are excluded
// from listings but never physically removed.
type Status string

const (
	StatusPublic  Status = "public"
	StatusDeleted Status = "deleted"
)

// Gallery is the galleries table row.
type Gallery struct {
	ID        int64
	OwnerID   int64
	Name      string
	Status    Status
	CreatedAt time.Time
}

// GalleryTile is the read-optimized listing view of a gallery: name, cover
// image, non-deleted image count, recency and author. ExamplePath is empty
// when the gallery holds no live images, and ImageCount is then zero.
type GalleryTile struct {
	ID          int64
	Name        string
	ExamplePath string
	ImageCount  int64
	CreatedAt   time.Time
	CreatedAgo  string
	CreatedBy   string
}

// NewGalleryTile builds a tile and derives the humanized age from createdAt.
func NewGalleryTile(id int64, name, examplePath string, imageCount int64, createdAt time.Time, createdBy string) GalleryTile {
	return GalleryTile{
		ID:          id,
		Name:        name,
		ExamplePath: examplePath,
		ImageCount:  imageCount,
		CreatedAt:   createdAt,
		CreatedAgo:  humanizeAge(time.Since(createdAt)),
		CreatedBy:   createdBy,
	}
}

func humanizeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "a minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "an hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "a day ago"
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

// GalleryContents is the detail view of a gallery: its live images in
// insertion order.
type GalleryContents struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	Images    []Image
}
