package service

import (
	"context"
	"fmt"
	"time"

	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID string, weekStartsOn string) (*models.Settings, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

// GetSettingsInfo returns the stored preferences or the defaults (weeks start
// on Sunday) for users who never saved any.
func (s *settingsService) GetSettingsInfo(ctx context.Context, userID string) (*models.Settings, error) {
	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	if !isExist {
		return &models.Settings{UserID: userID, WeekStartsOn: models.Weekday(time.Sunday)}, nil
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, weekStartsOn string) (*models.Settings, error) {
	weekday, err := models.ParseWeekday(weekStartsOn)
	if err != nil {
		return nil, err
	}

	settings := models.Settings{
		UserID:       userID,
		WeekStartsOn: weekday,
	}
	if err := s.sr.Upsert(ctx, &settings); err != nil {
		return nil, fmt.Errorf("error updating settings: %w", err)
	}
	return &settings, nil
}
