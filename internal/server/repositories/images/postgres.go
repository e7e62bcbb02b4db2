package images

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) InsertOriginal(ctx context.Context, userID, galleryID int64, filename, path string) (int64, error) {
	query := `
		INSERT INTO original_images (user_id, gallery_id, filename, path)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, galleryID, filename, path).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) InsertModified(ctx context.Context, userID, originalImageID int64, path, caption string) (int64, error) {
	query := `
		INSERT INTO modified_images (user_id, original_image_id, path, caption, status)
		VALUES ($1, $2, $3, $4, 'public')
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, originalImageID, path, caption).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListByGallery(ctx context.Context, galleryID int64) ([]models.Image, error) {
	query := `
		SELECT m.id, m.path, m.caption
		FROM original_images o
		JOIN modified_images m ON m.original_image_id = o.id
		WHERE o.gallery_id = $1 AND m.status != 'deleted'
		ORDER BY m.id
	`
	rows, err := r.db.QueryContext(ctx, query, galleryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.Path, &img.Caption); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return images, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE modified_images SET status = 'deleted', modified_at = now() WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateCaption(ctx context.Context, id int64, caption string) error {
	query := `
		UPDATE modified_images SET caption = $1, modified_at = now() WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, caption, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
