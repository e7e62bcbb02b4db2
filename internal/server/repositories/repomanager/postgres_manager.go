package repomanager

import (
	"context"
	"database/sql"

	"github.com/avdeev-d/gallerykeep/internal/dbx"
	"github.com/avdeev-d/gallerykeep/internal/server/migrations"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/galleries"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/images"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/sessions"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Galleries(db dbx.DBTX) galleries.Repository {
	return galleries.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Images(db dbx.DBTX) images.Repository {
	return images.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
