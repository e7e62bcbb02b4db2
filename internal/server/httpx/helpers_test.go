package httpx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/logging"
	"github.com/avdeev-d/gallerykeep/internal/server/auth"
	sc "github.com/avdeev-d/gallerykeep/internal/server/config"
	"github.com/avdeev-d/gallerykeep/internal/server/mail"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/avdeev-d/gallerykeep/internal/server/services"
)

const testSecret = "test-secret"

func writeTestTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	names := []string{
		"login.html", "signup.html", "message.html",
		"galleries.html", "gallery.html", "lightbox.html", "upload.html",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("writing template %s: %v", name, err)
		}
	}
	return dir
}

func testConfig(t *testing.T) *sc.Config {
	t.Helper()
	return &sc.Config{
		CookieSecret:    testSecret,
		SessionTTL:      7 * 24 * time.Hour,
		ImageDir:        "img",
		ThumbnailMaxDim: 300,
		TemplateGlob:    filepath.Join(writeTestTemplates(t), "*.html"),
		PublicHost:      "localhost:8080",
		AdminEmail:      "admin@example.com",
	}
}

type stubUsers struct {
	signUpOut string
	signUpErr error

	verifyOut string
	verifyErr error

	loginOut string
	loginErr error

	loggedOut []string
}

func (s *stubUsers) SignUp(ctx context.Context, email, password string) (string, error) {
	return s.signUpOut, s.signUpErr
}

func (s *stubUsers) Verify(ctx context.Context, verificationID string) (string, error) {
	return s.verifyOut, s.verifyErr
}

func (s *stubUsers) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginOut, s.loginErr
}

func (s *stubUsers) Logout(ctx context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

type stubIdentity struct {
	users map[string]*models.User
	err   error
}

func (s *stubIdentity) Resolve(ctx context.Context, token string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

type stubGallery struct {
	tiles    []models.GalleryTile
	contents *models.GalleryContents
	getErr   error

	createdGalleries []string
	deletedGalleries []int64
	renamed          map[int64]string
	deletedImages    []int64
	captions         map[int64]string

	createImagePaths services.ImagePaths
	createImageErr   error
}

func (s *stubGallery) CreateGallery(ctx context.Context, ownerID int64, name string) (int64, error) {
	s.createdGalleries = append(s.createdGalleries, name)
	return 1, nil
}

func (s *stubGallery) ListGalleries(ctx context.Context) ([]models.GalleryTile, error) {
	return s.tiles, nil
}

func (s *stubGallery) GetGallery(ctx context.Context, id int64) (*models.GalleryContents, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.contents, nil
}

func (s *stubGallery) DeleteGallery(ctx context.Context, id int64) error {
	s.deletedGalleries = append(s.deletedGalleries, id)
	return nil
}

func (s *stubGallery) RenameGallery(ctx context.Context, id int64, name string) error {
	if s.renamed == nil {
		s.renamed = map[int64]string{}
	}
	s.renamed[id] = name
	return nil
}

func (s *stubGallery) CreateImage(ctx context.Context, ownerID, galleryID int64, originalFilename, caption string, persist services.PersistFunc) (*models.NewImage, error) {
	if s.createImageErr != nil {
		return nil, s.createImageErr
	}
	if persist != nil {
		if err := persist(ctx, s.createImagePaths); err != nil {
			return nil, err
		}
	}
	return &models.NewImage{ID: 10, Path: s.createImagePaths.Path, OriginalPath: s.createImagePaths.OriginalPath}, nil
}

func (s *stubGallery) DeleteImage(ctx context.Context, id int64) error {
	s.deletedImages = append(s.deletedImages, id)
	return nil
}

func (s *stubGallery) UpdateCaption(ctx context.Context, id int64, caption string) error {
	if s.captions == nil {
		s.captions = map[int64]string{}
	}
	s.captions[id] = caption
	return nil
}

func (s *stubGallery) GetLightbox(ctx context.Context, galleryID, imageID int64) (*services.Lightbox, error) {
	return &services.Lightbox{GalleryID: galleryID, Image: models.Image{ID: imageID}}, nil
}

type memSink struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemSink() *memSink {
	return &memSink{blobs: map[string][]byte{}}
}

func (s *memSink) Save(ctx context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *memSink) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memSink) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		out = append(out, k)
	}
	return out
}

type stubMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *stubMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type testDeps struct {
	users    *stubUsers
	identity *stubIdentity
	gallery  *stubGallery
	sink     *memSink
	mailer   *stubMailer
}

func newTestServer(t *testing.T) (*Server, *testDeps) {
	t.Helper()
	deps := &testDeps{
		users:    &stubUsers{},
		identity: &stubIdentity{users: map[string]*models.User{}},
		gallery:  &stubGallery{},
		sink:     newMemSink(),
		mailer:   &stubMailer{},
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s := NewServer(testConfig(t), logger, deps.users, deps.identity, deps.gallery, deps.sink, deps.mailer)
	return s, deps
}

// sessionCookie mints a sealed cookie for token and registers user under it.
func sessionCookie(t *testing.T, deps *testDeps, token string, user *models.User) *http.Cookie {
	t.Helper()
	deps.identity.users[token] = user
	sealed, err := auth.SealSessionCookie(token, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("SealSessionCookie: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: sealed}
}
