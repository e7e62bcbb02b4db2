package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avdeev-d/gallerykeep/internal/dbx"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	galleriesrepo "github.com/avdeev-d/gallerykeep/internal/server/repositories/galleries"
	imagesrepo "github.com/avdeev-d/gallerykeep/internal/server/repositories/images"
	sessionsrepo "github.com/avdeev-d/gallerykeep/internal/server/repositories/sessions"
	usersrepo "github.com/avdeev-d/gallerykeep/internal/server/repositories/users"
)

// --- shared helpers and fakes for the service tests ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	verifyOut string
	verifyErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) Verify(ctx context.Context, verificationID string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.verifyOut, nil
}

type fakeSessionsRepo struct {
	created   []string
	createErr error

	findOut *models.Session
	findErr error

	deleted []string
	delErr  error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeGalleriesRepo struct {
	createOut int64
	createErr error

	tilesOut []models.GalleryTile
	tilesErr error

	getOut *models.Gallery
	getErr error

	deleted   []int64
	deleteErr error

	renamed   map[int64]string
	renameErr error
}

func (f *fakeGalleriesRepo) Create(ctx context.Context, ownerID int64, name string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeGalleriesRepo) ListTiles(ctx context.Context) ([]models.GalleryTile, error) {
	if f.tilesErr != nil {
		return nil, f.tilesErr
	}
	return f.tilesOut, nil
}

func (f *fakeGalleriesRepo) Get(ctx context.Context, id int64) (*models.Gallery, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeGalleriesRepo) SoftDelete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGalleriesRepo) Rename(ctx context.Context, id int64, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	if f.renamed == nil {
		f.renamed = map[int64]string{}
	}
	f.renamed[id] = name
	return nil
}

type fakeImagesRepo struct {
	originalOut int64
	originalErr error

	modifiedOut int64
	modifiedErr error

	listOut []models.Image
	listErr error

	deleted   []int64
	deleteErr error

	captions   map[int64]string
	captionErr error
}

func (f *fakeImagesRepo) InsertOriginal(ctx context.Context, userID, galleryID int64, filename, path string) (int64, error) {
	if f.originalErr != nil {
		return 0, f.originalErr
	}
	return f.originalOut, nil
}

func (f *fakeImagesRepo) InsertModified(ctx context.Context, userID, originalImageID int64, path, caption string) (int64, error) {
	if f.modifiedErr != nil {
		return 0, f.modifiedErr
	}
	return f.modifiedOut, nil
}

func (f *fakeImagesRepo) ListByGallery(ctx context.Context, galleryID int64) ([]models.Image, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeImagesRepo) SoftDelete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeImagesRepo) UpdateCaption(ctx context.Context, id int64, caption string) error {
	if f.captionErr != nil {
		return f.captionErr
	}
	if f.captions == nil {
		f.captions = map[int64]string{}
	}
	f.captions[id] = caption
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	g *fakeGalleriesRepo
	i *fakeImagesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }

func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }

func (m *fakeRepoManager) Galleries(db dbx.DBTX) galleriesrepo.Repository { return m.g }

func (m *fakeRepoManager) Images(db dbx.DBTX) imagesrepo.Repository { return m.i }
