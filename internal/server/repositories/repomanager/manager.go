// Package repomanager hands out repositories bound to a specific DB handle,
// so services can use the same accessors inside and outside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avdeev-d/gallerykeep/internal/dbx"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/galleries"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/images"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/sessions"
	"github.com/avdeev-d/gallerykeep/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Galleries(db dbx.DBTX) galleries.Repository
	Images(db dbx.DBTX) images.Repository
}
