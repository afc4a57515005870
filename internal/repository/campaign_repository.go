package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/models"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) (string, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context) ([]models.Campaign, error)
	ListOverlapping(ctx context.Context, from, to civil.Date) ([]models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `id, name, start_date, end_date, color, description, created_at, updated_at`

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var (
		c          models.Campaign
		start, end string
	)
	err := row.Scan(&c.ID, &c.Name, &start, &end, &c.Color, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.StartDate, err = parseDate("start_date", start); err != nil {
		return nil, err
	}
	if c.EndDate, err = parseDate("end_date", end); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (string, error) {
	query := `
		INSERT INTO campaigns (id, name, start_date, end_date, color, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`

	id, err := newID()
	if err != nil {
		return "", err
	}
	createdAt := now()

	_, err = r.db.ExecContext(ctx, query, id, campaign.Name, campaign.StartDate.String(), campaign.EndDate.String(),
		campaign.Color, campaign.Description, createdAt)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	campaign.ID = id
	campaign.CreatedAt = createdAt
	campaign.UpdatedAt = createdAt
	return id, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return c, nil
}

// List returns campaigns in creation order, which is the overlay display order.
func (r *campaignRepository) List(ctx context.Context) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at, id`
	return r.query(ctx, query)
}

func (r *campaignRepository) ListOverlapping(ctx context.Context, from, to civil.Date) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE end_date >= $1 AND start_date <= $2 ORDER BY created_at, id`
	return r.query(ctx, query, from.String(), to.String())
}

func (r *campaignRepository) query(ctx context.Context, query string, args ...any) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) (bool, error) {
	query := `
		UPDATE campaigns
		SET name = $1,
			start_date = $2,
			end_date = $3,
			color = $4,
			description = $5,
			updated_at = $6
		WHERE id = $7
	`
	updatedAt := now()
	res, err := r.db.ExecContext(ctx, query, campaign.Name, campaign.StartDate.String(), campaign.EndDate.String(),
		campaign.Color, campaign.Description, updatedAt, campaign.ID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	ok, err := affected(res)
	if ok {
		campaign.UpdatedAt = updatedAt
	}
	return ok, err
}

// Remove deletes the campaign only. Posts keep their now dangling reference.
func (r *campaignRepository) Remove(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM campaigns WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}
