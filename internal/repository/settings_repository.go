package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentplanner/internal/models"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Settings, bool, error)
	Upsert(ctx context.Context, s *models.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID string) (*models.Settings, bool, error) {
	query := `SELECT user_id, week_starts_on, created_at, updated_at FROM settings WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var (
		settings  models.Settings
		weekStart int
	)
	err := row.Scan(&settings.UserID, &weekStart, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	settings.WeekStartsOn = models.Weekday(weekStart)

	return &settings, true, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO settings (user_id, week_starts_on, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET week_starts_on = excluded.week_starts_on,
			updated_at = excluded.updated_at
	`
	ts := now()
	_, err := r.db.ExecContext(ctx, query, s.UserID, int(s.WeekStartsOn), ts)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	s.UpdatedAt = ts
	return nil
}
