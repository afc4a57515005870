package service_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/calendar"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/transfer"
	"github.com/stretchr/testify/require"
)

func TestMonthView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	campaign, err := f.campaigns.CreateCampaign(ctx, &transfer.CampaignInput{
		Name: "June push", StartDate: "2024-06-01", EndDate: "2024-06-30",
	})
	require.NoError(t, err)

	f.draft(t, transfer.PostInput{Title: "untimed", Date: "2024-06-15", CampaignID: campaign.ID})
	f.draft(t, transfer.PostInput{Title: "afternoon", Date: "2024-06-15", Time: "14:00"})
	f.draft(t, transfer.PostInput{Title: "morning", Date: "2024-06-15", Time: "09:00", Platform: "facebook"})
	f.draft(t, transfer.PostInput{Title: "spill-over", Date: "2024-07-02", Time: "10:00"})
	f.draft(t, transfer.PostInput{Title: "out of grid", Date: "2024-08-01"})

	view, err := f.calendar.MonthView(ctx, civil.Date{Year: 2024, Month: 6, Day: 1}, time.Sunday, calendar.Criteria{})
	require.NoError(t, err)
	require.Equal(t, "2024-06", view.Month)
	require.Equal(t, "sunday", view.WeekStartsOn)
	require.Len(t, view.Weeks, 6)

	first := view.Weeks[0][0]
	require.Equal(t, civil.Date{Year: 2024, Month: 5, Day: 26}, first.Date)
	require.False(t, first.InMonth)
	require.Empty(t, first.Campaigns)

	cell := findCell(t, *view, civil.Date{Year: 2024, Month: 6, Day: 15})
	require.True(t, cell.InMonth)
	require.Equal(t, 3, cell.PostCount)
	require.Len(t, cell.Campaigns, 1)
	require.Equal(t, []string{"09:00", "14:00", calendar.NoTimeKey}, calendar.GroupKeys(cell.Groups))

	july := findCell(t, *view, civil.Date{Year: 2024, Month: 7, Day: 2})
	require.False(t, july.InMonth)
	require.Equal(t, 1, july.PostCount)

	filtered, err := f.calendar.MonthView(ctx, civil.Date{Year: 2024, Month: 6, Day: 1}, time.Monday,
		calendar.Criteria{Platforms: []models.Platform{models.PlatformFacebook}})
	require.NoError(t, err)
	require.Equal(t, "monday", filtered.WeekStartsOn)
	require.Equal(t, civil.Date{Year: 2024, Month: 5, Day: 27}, filtered.Weeks[0][0].Date)

	cell = findCell(t, *filtered, civil.Date{Year: 2024, Month: 6, Day: 15})
	require.Equal(t, 1, cell.PostCount)
	require.Equal(t, "morning", cell.Groups[0].Posts[0].Title)
	require.Len(t, cell.Campaigns, 1, "filters never hide the campaign overlay")
}

func TestMonthView_InvalidAnchor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	view, err := f.calendar.MonthView(context.Background(), civil.Date{}, time.Sunday, calendar.Criteria{})
	require.NoError(t, err)
	require.Empty(t, view.Weeks)
}

func TestDayAgenda(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.campaigns.CreateCampaign(ctx, &transfer.CampaignInput{
		Name: "Launch", StartDate: "2024-06-15", EndDate: "2024-06-15",
	})
	require.NoError(t, err)
	f.draft(t, transfer.PostInput{Title: "b", Date: "2024-06-15", Time: "14:00"})
	f.draft(t, transfer.PostInput{Title: "a", Date: "2024-06-15", Time: "09:00"})
	f.draft(t, transfer.PostInput{Title: "tomorrow", Date: "2024-06-16", Time: "09:00"})

	agenda, err := f.calendar.DayAgenda(ctx, civil.Date{Year: 2024, Month: 6, Day: 15}, calendar.Criteria{})
	require.NoError(t, err)
	require.Len(t, agenda.Campaigns, 1)
	require.Equal(t, []string{"09:00", "14:00"}, calendar.GroupKeys(agenda.Groups))
	require.Equal(t, "a", agenda.Groups[0].Posts[0].Title)
}

func findCell(t *testing.T, view calendar.MonthView, d civil.Date) calendar.DayCell {
	t.Helper()

	for _, week := range view.Weeks {
		for _, cell := range week {
			if cell.Date == d {
				return cell
			}
		}
	}
	t.Fatalf("date %s not in grid", d)
	return calendar.DayCell{}
}
