package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentplanner/internal/models"
)

type PostMediaRepository interface {
	Create(ctx context.Context, tx *sql.Tx, pm *models.PostMedia) error
	NextDisplayOrder(ctx context.Context, tx *sql.Tx, postID string) (int, error)
	ListByPostID(ctx context.Context, postID string) ([]models.PostMedia, error)
}

type postMediaRepository struct {
	db *sql.DB
}

func NewPostMediaRepository(db *sql.DB) PostMediaRepository {
	return &postMediaRepository{db: db}
}

func (r *postMediaRepository) Create(ctx context.Context, tx *sql.Tx, pm *models.PostMedia) error {
	query := `
		INSERT INTO post_media (post_id, asset_id, display_order, created_at)
		VALUES ($1, $2, $3, $4)
	`
	createdAt := now()
	_, err := conn(r.db, tx).ExecContext(ctx, query, pm.PostID, pm.AssetID, pm.DisplayOrder, createdAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	pm.CreatedAt = createdAt
	return nil
}

func (r *postMediaRepository) NextDisplayOrder(ctx context.Context, tx *sql.Tx, postID string) (int, error) {
	query := `SELECT COALESCE(MAX(display_order) + 1, 0) FROM post_media WHERE post_id = $1`

	var next int
	if err := conn(r.db, tx).QueryRowContext(ctx, query, postID).Scan(&next); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return next, nil
}

func (r *postMediaRepository) ListByPostID(ctx context.Context, postID string) ([]models.PostMedia, error) {
	query := `
		SELECT post_id, asset_id, display_order, created_at
		FROM post_media
		WHERE post_id = $1
		ORDER BY display_order
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	media := []models.PostMedia{}
	for rows.Next() {
		var pm models.PostMedia
		if err := rows.Scan(&pm.PostID, &pm.AssetID, &pm.DisplayOrder, &pm.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		media = append(media, pm)
	}
	return media, rows.Err()
}
