package service

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/calendar"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

func ParseDate(field, s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, &models.ValidationError{Field: field, Message: "date must be YYYY-MM-DD"}
	}
	return d, nil
}

// ParseMonth accepts YYYY-MM and returns the first day of that month.
func ParseMonth(s string) (civil.Date, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, &models.ValidationError{Field: "month", Message: "month must be YYYY-MM"}
	}
	return civil.DateOf(t), nil
}

// ParseCriteria turns comma separated query values into calendar criteria.
func ParseCriteria(f transfer.PostFilter) (calendar.Criteria, error) {
	var c calendar.Criteria
	for _, p := range splitList(f.Platforms) {
		platform, err := models.ParsePlatform(p)
		if err != nil {
			return calendar.Criteria{}, err
		}
		c.Platforms = append(c.Platforms, platform)
	}
	for _, s := range splitList(f.Statuses) {
		status, err := models.ParsePostStatus(s)
		if err != nil {
			return calendar.Criteria{}, err
		}
		c.Statuses = append(c.Statuses, status)
	}
	c.CampaignIDs = splitList(f.Campaigns)
	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
