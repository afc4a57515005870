package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentplanner/internal/models"
)

type MediaAssetRepository interface {
	Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (string, error)
	GetByID(ctx context.Context, id string) (*models.MediaAsset, error)
	ListByPostID(ctx context.Context, postID string) ([]models.MediaAsset, error)
}

type mediaAssetRepository struct {
	db *sql.DB
}

func NewMediaAssetRepository(db *sql.DB) MediaAssetRepository {
	return &mediaAssetRepository{db: db}
}

func (r *mediaAssetRepository) Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (string, error) {
	query := `
		INSERT INTO media_assets (id, user_id, file_name, file_type, file_size, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	id := ma.ID
	if id == "" {
		var err error
		if id, err = newID(); err != nil {
			return "", err
		}
	}
	createdAt := now()

	_, err := conn(r.db, tx).ExecContext(ctx, query, id, ma.UserID, ma.FileName, ma.FileType, ma.FileSize, ma.FileURL, createdAt)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	ma.ID = id
	ma.CreatedAt = createdAt
	return id, nil
}

func (r *mediaAssetRepository) GetByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	query := `
		SELECT id, user_id, file_name, file_type, file_size, file_url, created_at
		FROM media_assets
		WHERE id = $1
	`

	var ma models.MediaAsset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ma.ID,
		&ma.UserID,
		&ma.FileName,
		&ma.FileType,
		&ma.FileSize,
		&ma.FileURL,
		&ma.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &ma, nil
}

// ListByPostID returns the assets attached to a post in display order.
func (r *mediaAssetRepository) ListByPostID(ctx context.Context, postID string) ([]models.MediaAsset, error) {
	query := `
		SELECT a.id, a.user_id, a.file_name, a.file_type, a.file_size, a.file_url, a.created_at
		FROM media_assets a
		JOIN post_media pm ON pm.asset_id = a.id
		WHERE pm.post_id = $1
		ORDER BY pm.display_order
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	assets := []models.MediaAsset{}
	for rows.Next() {
		var ma models.MediaAsset
		if err := rows.Scan(&ma.ID, &ma.UserID, &ma.FileName, &ma.FileType, &ma.FileSize, &ma.FileURL, &ma.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		assets = append(assets, ma)
	}
	return assets, rows.Err()
}
