// Package httpx is the HTTP boundary: routing, session middleware and the
// HTML handlers. All domain decisions live in the services; handlers only
// translate between HTTP and service calls.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/avdeev-d/gallerykeep/internal/logging"
	"github.com/avdeev-d/gallerykeep/internal/server/blob"
	sc "github.com/avdeev-d/gallerykeep/internal/server/config"
	"github.com/avdeev-d/gallerykeep/internal/server/mail"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
	"github.com/avdeev-d/gallerykeep/internal/server/services"
	"github.com/avdeev-d/gallerykeep/internal/server/thumbs"
	"github.com/gin-gonic/gin"
)

// UserProvider is the slice of the user service the handlers need.
type UserProvider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, verificationID string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// IdentityProvider resolves a session token to a user.
type IdentityProvider interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// GalleryProvider is the slice of the gallery service the handlers need.
type GalleryProvider interface {
	CreateGallery(ctx context.Context, ownerID int64, name string) (int64, error)
	ListGalleries(ctx context.Context) ([]models.GalleryTile, error)
	GetGallery(ctx context.Context, id int64) (*models.GalleryContents, error)
	DeleteGallery(ctx context.Context, id int64) error
	RenameGallery(ctx context.Context, id int64, name string) error
	CreateImage(ctx context.Context, ownerID, galleryID int64, originalFilename, caption string, persist services.PersistFunc) (*models.NewImage, error)
	DeleteImage(ctx context.Context, id int64) error
	UpdateCaption(ctx context.Context, id int64, caption string) error
	GetLightbox(ctx context.Context, galleryID, imageID int64) (*services.Lightbox, error)
}

// Server serves the gallery web UI and image bytes.
type Server struct {
	cfg      *sc.Config
	logger   logging.Logger
	users    UserProvider
	identity IdentityProvider
	gallery  GalleryProvider
	sink     blob.Sink
	mailer   mail.Mailer
	thumbs   *thumbs.Generator

	engine     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg *sc.Config, logger logging.Logger, users UserProvider, identity IdentityProvider, gallery GalleryProvider, sink blob.Sink, mailer mail.Mailer) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		users:    users,
		identity: identity,
		gallery:  gallery,
		sink:     sink,
		mailer:   mailer,
		thumbs:   thumbs.NewGenerator(cfg.ThumbnailMaxDim),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.LoadHTMLGlob(cfg.TemplateGlob)
	s.routes(engine)
	s.engine = engine

	s.httpServer = &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes(engine *gin.Engine) {
	// reachable without a session
	engine.GET("/login", s.loginForm)
	engine.POST("/login", s.login)
	engine.GET("/signup", s.signupForm)
	engine.POST("/signup", s.signup)
	engine.GET("/signup/:id", s.verify)

	// everything else sits behind the session gate
	authed := engine.Group("/", s.authenticate())
	authed.GET("/", s.index)
	authed.GET("/galleries", s.listGalleries)
	authed.GET("/galleries/:id", s.showGallery)
	authed.GET("/galleries/:id/images/:imageID", s.showLightbox)
	authed.GET("/galleries/:id/upload", s.uploadForm)
	authed.GET("/img/:name", s.serveImage)
	authed.POST("/logout", s.logout)

	// mutations additionally require the writer role
	writer := authed.Group("/", s.requireWriter())
	writer.POST("/galleries", s.createGallery)
	writer.POST("/galleries/:id/rename", s.renameGallery)
	writer.POST("/galleries/:id/delete", s.deleteGallery)
	writer.POST("/galleries/:id/images", s.uploadImage)
	writer.POST("/galleries/:id/images/:imageID/caption", s.updateCaption)
	writer.POST("/galleries/:id/images/:imageID/delete", s.deleteImage)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
