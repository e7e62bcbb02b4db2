// Package server initializes and runs the gallery application server.
// It wires the database, repositories, services, blob sink, mailer and the
// HTTP server, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avdeev-d/gallerykeep/internal/logging"
	"github.com/avdeev-d/gallerykeep/internal/server/blob"
	"github.com/avdeev-d/gallerykeep/internal/server/config"
	"github.com/avdeev-d/gallerykeep/internal/server/httpx"
	"github.com/avdeev-d/gallerykeep/internal/server/mail"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/repomanager"
	"github.com/avdeev-d/gallerykeep/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpx.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	userService := services.NewUserService(db, rm, cfg)
	identityService := services.NewIdentityService(db, rm)
	galleryService := services.NewGalleryService(db, rm, cfg)

	var sink blob.Sink
	if cfg.S3Enabled {
		sink, err = blob.NewS3Sink(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
	} else {
		sink, err = blob.NewLocalSink(cfg.ImageDir)
		if err != nil {
			return nil, fmt.Errorf("blob init error: %w", err)
		}
	}

	mailer := mail.NewMailtrapMailer(cfg)

	httpServer := httpx.NewServer(cfg, logger, userService, identityService, galleryService, sink, mailer)

	return &App{config: cfg, logger: logger, db: db, server: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
