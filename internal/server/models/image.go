package models

import "time"

// OriginalImage is the original_images table row: the untouched upload.
// Every original owns exactly one ModifiedImage; an orphaned original is a
// data-integrity bug.
type OriginalImage struct {
	ID        int64
	UserID    int64
	GalleryID int64
	Filename  string
	Path      string
	CreatedAt time.Time
}

// ModifiedImage is the modified_images table row: the display-ready copy
// that carries the caption and the soft-delete status.
type ModifiedImage struct {
	ID              int64
	UserID          int64
	OriginalImageID int64
	Path            string
	Caption         string
	Status          Status
	CreatedAt       time.Time
	ModifiedAt      time.Time
}

// Image is the read view used by gallery pages and the lightbox.
type Image struct {
	ID      int64
	Path    string
	Caption string
}

// NewImage is returned by image creation: the new modified-image id plus the
// two generated storage paths the caller must persist bytes to.
type NewImage struct {
	ID           int64
	Path         string
	OriginalPath string
}
