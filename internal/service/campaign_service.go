package service

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/calendar"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

var campaignPalette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899"}

type CampaignService interface {
	CreateCampaign(ctx context.Context, in *transfer.CampaignInput) (*models.Campaign, error)
	CampaignInfo(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context) ([]models.Campaign, error)
	ActiveOn(ctx context.Context, date civil.Date) ([]models.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, in *transfer.CampaignInput) (*models.Campaign, error)
	Remove(ctx context.Context, id string) error
}

type campaignService struct {
	cr repository.CampaignRepository
}

func NewCampaignService(cr repository.CampaignRepository) CampaignService {
	return &campaignService{cr: cr}
}

func (s *campaignService) CreateCampaign(ctx context.Context, in *transfer.CampaignInput) (*models.Campaign, error) {
	campaign, err := parseCampaignInput(in)
	if err != nil {
		return nil, err
	}
	if campaign.Color == "" {
		existing, err := s.cr.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing campaigns: %w", err)
		}
		campaign.Color = campaignPalette[len(existing)%len(campaignPalette)]
	}

	if _, err := s.cr.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("error creating campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) CampaignInfo(ctx context.Context, id string) (*models.Campaign, error) {
	campaign, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting campaign: %w", err)
	}
	if campaign == nil {
		return nil, models.NotFoundError("campaign", id)
	}
	return campaign, nil
}

func (s *campaignService) List(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := s.cr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *campaignService) ActiveOn(ctx context.Context, date civil.Date) ([]models.Campaign, error) {
	campaigns, err := s.cr.ListOverlapping(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("error listing campaigns: %w", err)
	}
	return calendar.ActiveCampaigns(date, campaigns), nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, id string, in *transfer.CampaignInput) (*models.Campaign, error) {
	current, err := s.CampaignInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	campaign, err := parseCampaignInput(in)
	if err != nil {
		return nil, err
	}
	campaign.ID = current.ID
	campaign.CreatedAt = current.CreatedAt
	if campaign.Color == "" {
		campaign.Color = current.Color
	}

	updated, err := s.cr.Update(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("error updating campaign: %w", err)
	}
	if !updated {
		return nil, models.NotFoundError("campaign", id)
	}
	return campaign, nil
}

// Remove deletes a campaign. Posts referencing it are left untouched.
func (s *campaignService) Remove(ctx context.Context, id string) error {
	removed, err := s.cr.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("error removing campaign: %w", err)
	}
	if !removed {
		return models.NotFoundError("campaign", id)
	}
	return nil
}

func parseCampaignInput(in *transfer.CampaignInput) (*models.Campaign, error) {
	if in == nil {
		return nil, &models.ValidationError{Message: "campaign data is missing"}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	start, err := ParseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, &models.ValidationError{Field: "end_date", Message: "end date cannot be before start date"}
	}

	return &models.Campaign{
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Color:       strings.TrimSpace(in.Color),
		Description: in.Description,
	}, nil
}
