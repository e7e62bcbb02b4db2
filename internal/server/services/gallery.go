package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/dbx"
	"github.com/avdeev-d/gallerykeep/internal/server/config"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/repomanager"
)

// ImagePaths carries the two generated storage paths of an upload: one for
// the untouched original, one for the display copy. Neither derives from the
// uploaded filename, so paths cannot collide and never leak the original
// name into the served URL.
type ImagePaths struct {
	Path         string
	OriginalPath string
}

// PersistFunc receives the generated paths and must durably store both byte
// copies. It runs inside the image-creation transaction: returning an error
// rolls the two inserted rows back.
type PersistFunc func(ctx context.Context, paths ImagePaths) error

// GalleryService implements the content lifecycle: galleries and image pairs
// with soft-delete semantics.
type GalleryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	imgPrefix   string
}

func NewGalleryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *GalleryService {
	return &GalleryService{
		db:          db,
		repomanager: m,
		imgPrefix:   cfg.ImageDir,
	}
}

// image path ids are 16 random bytes, hex-encoded
const imagePathIDLen = 16

func (s *GalleryService) newImagePaths() (ImagePaths, error) {
	display, err := common.MakeRandHexString(imagePathIDLen)
	if err != nil {
		return ImagePaths{}, err
	}
	original, err := common.MakeRandHexString(imagePathIDLen)
	if err != nil {
		return ImagePaths{}, err
	}
	return ImagePaths{
		Path:         fmt.Sprintf("%s/%s", s.imgPrefix, display),
		OriginalPath: fmt.Sprintf("%s/%s", s.imgPrefix, original),
	}, nil
}

// CreateGallery inserts a public gallery owned by ownerID.
func (s *GalleryService) CreateGallery(ctx context.Context, ownerID int64, name string) (int64, error) {
	repo := s.repomanager.Galleries(s.db)
	id, err := repo.Create(ctx, ownerID, name)
	if err != nil {
		return 0, fmt.Errorf("error creating gallery: %w", err)
	}
	return id, nil
}

// ListGalleries returns the listing tiles, newest first, soft-deleted
// galleries excluded.
func (s *GalleryService) ListGalleries(ctx context.Context) ([]models.GalleryTile, error) {
	repo := s.repomanager.Galleries(s.db)
	tiles, err := repo.ListTiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing galleries: %w", err)
	}
	return tiles, nil
}

// GetGallery returns a gallery with its live images. Unknown and
// soft-deleted ids yield ErrNotFound.
func (s *GalleryService) GetGallery(ctx context.Context, id int64) (*models.GalleryContents, error) {
	galleryRepo := s.repomanager.Galleries(s.db)

	gallery, err := galleryRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading gallery: %w", err)
	}

	imageRepo := s.repomanager.Images(s.db)
	images, err := imageRepo.ListByGallery(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing gallery images: %w", err)
	}

	return &models.GalleryContents{
		ID:        gallery.ID,
		Name:      gallery.Name,
		CreatedAt: gallery.CreatedAt,
		Images:    images,
	}, nil
}

// DeleteGallery soft-deletes a gallery. Repeating the call is harmless.
func (s *GalleryService) DeleteGallery(ctx context.Context, id int64) error {
	repo := s.repomanager.Galleries(s.db)
	if err := repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("error deleting gallery: %w", err)
	}
	return nil
}

// RenameGallery updates the gallery name.
func (s *GalleryService) RenameGallery(ctx context.Context, id int64, name string) error {
	repo := s.repomanager.Galleries(s.db)
	if err := repo.Rename(ctx, id, name); err != nil {
		return fmt.Errorf("error renaming gallery: %w", err)
	}
	return nil
}

// CreateImage inserts the original/modified row pair and runs persist inside
// the same transaction. If the second insert or the byte persistence fails,
// everything rolls back: no orphaned originals, no rows for bytes that were
// never stored.
func (s *GalleryService) CreateImage(ctx context.Context, ownerID, galleryID int64, originalFilename, caption string, persist PersistFunc) (*models.NewImage, error) {
	paths, err := s.newImagePaths()
	if err != nil {
		return nil, fmt.Errorf("error generating image paths: %w", err)
	}

	var image *models.NewImage
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Images(tx)

		originalID, err := repo.InsertOriginal(ctx, ownerID, galleryID, originalFilename, paths.OriginalPath)
		if err != nil {
			return err
		}

		modifiedID, err := repo.InsertModified(ctx, ownerID, originalID, paths.Path, caption)
		if err != nil {
			return err
		}

		if persist != nil {
			if err := persist(ctx, paths); err != nil {
				return fmt.Errorf("error persisting image bytes: %w", err)
			}
		}

		image = &models.NewImage{ID: modifiedID, Path: paths.Path, OriginalPath: paths.OriginalPath}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return image, nil
}

// DeleteImage soft-deletes a modified image; the row stays joinable for
// audit but disappears from listings.
func (s *GalleryService) DeleteImage(ctx context.Context, id int64) error {
	repo := s.repomanager.Images(s.db)
	if err := repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}
	return nil
}

// UpdateCaption replaces an image caption.
func (s *GalleryService) UpdateCaption(ctx context.Context, id int64, caption string) error {
	repo := s.repomanager.Images(s.db)
	if err := repo.UpdateCaption(ctx, id, caption); err != nil {
		return fmt.Errorf("error updating caption: %w", err)
	}
	return nil
}

// Lightbox is the detail view of one image inside a gallery, with
// wrap-around neighbors for prev/next navigation.
type Lightbox struct {
	GalleryID       int64
	Image           models.Image
	PreviousImageID int64
	NextImageID     int64
}

// GetLightbox locates imageID inside the gallery's live images and computes
// its wrap-around neighbors. A single-image gallery points both neighbors at
// the image itself.
func (s *GalleryService) GetLightbox(ctx context.Context, galleryID, imageID int64) (*Lightbox, error) {
	contents, err := s.GetGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, img := range contents.Images {
		if img.ID == imageID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, common.ErrNotFound
	}

	total := len(contents.Images)
	previous := (index - 1 + total) % total
	next := (index + 1) % total

	return &Lightbox{
		GalleryID:       galleryID,
		Image:           contents.Images[index],
		PreviousImageID: contents.Images[previous].ID,
		NextImageID:     contents.Images[next].ID,
	}, nil
}
