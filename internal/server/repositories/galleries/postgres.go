package galleries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev-d/gallerykeep/internal/common"
	"github.com/avdeev-d/gallerykeep/internal/dbx"
	"github.com/avdeev-d/gallerykeep/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID int64, name string) (int64, error) {
	query := `
		INSERT INTO galleries (user_id, name, status)
		VALUES ($1, $2, 'public')
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, ownerID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ListTiles aggregates per-gallery counts and cover image. The count joins
// only live modified images, so an empty gallery reports zero and a NULL
// cover rather than a null-propagation artifact counted as one row.
func (r *PostgresRepository) ListTiles(ctx context.Context) ([]models.GalleryTile, error) {
	query := `
		SELECT
			g.id,
			g.name,
			g.created_at,
			COUNT(m.id) AS image_count,
			MAX(m.path) AS example_path,
			u.email AS created_by
		FROM galleries g
		LEFT JOIN original_images o ON o.gallery_id = g.id
		LEFT JOIN modified_images m ON m.original_image_id = o.id AND m.status != 'deleted'
		LEFT JOIN users u ON u.id = g.user_id
		WHERE g.status != 'deleted'
		GROUP BY g.id, g.name, g.created_at, u.email
		ORDER BY g.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tiles []models.GalleryTile
	for rows.Next() {
		var (
			id          int64
			name        string
			createdAt   time.Time
			imageCount  int64
			examplePath sql.NullString
			createdBy   string
		)
		if err := rows.Scan(&id, &name, &createdAt, &imageCount, &examplePath, &createdBy); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tiles = append(tiles, models.NewGalleryTile(id, name, examplePath.String, imageCount, createdAt, createdBy))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tiles, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Gallery, error) {
	query := `
		SELECT id, user_id, name, status, created_at
		FROM galleries
		WHERE id = $1 AND status != 'deleted'
	`
	gallery := &models.Gallery{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&gallery.ID, &gallery.OwnerID, &gallery.Name, &gallery.Status, &gallery.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return gallery, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE galleries SET status = 'deleted' WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Rename(ctx context.Context, id int64, name string) error {
	query := `
		UPDATE galleries SET name = $1 WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, name, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
