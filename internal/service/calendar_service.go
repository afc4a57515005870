package service

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/calendar"
	"github.com/maheshrc27/contentplanner/internal/metrics"
	"github.com/maheshrc27/contentplanner/internal/repository"
)

// CalendarService loads the posts and campaigns a calendar screen needs and
// runs them through the calendar engine.
type CalendarService interface {
	MonthView(ctx context.Context, month civil.Date, weekStart time.Weekday, criteria calendar.Criteria) (*calendar.MonthView, error)
	DayAgenda(ctx context.Context, date civil.Date, criteria calendar.Criteria) (*calendar.DayAgenda, error)
}

type calendarService struct {
	pr repository.PostRepository
	cr repository.CampaignRepository
}

func NewCalendarService(pr repository.PostRepository, cr repository.CampaignRepository) CalendarService {
	return &calendarService{
		pr: pr,
		cr: cr,
	}
}

func (s *calendarService) MonthView(ctx context.Context, month civil.Date, weekStart time.Weekday, criteria calendar.Criteria) (*calendar.MonthView, error) {
	defer metrics.ObserveMonthView(time.Now())

	from, to, ok := calendar.GridRange(month, weekStart)
	if !ok {
		view := calendar.BuildMonthView(month, weekStart, nil, nil, criteria)
		return &view, nil
	}

	posts, err := s.pr.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error loading posts: %w", err)
	}
	campaigns, err := s.cr.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error loading campaigns: %w", err)
	}

	view := calendar.BuildMonthView(month, weekStart, campaigns, posts, criteria)
	return &view, nil
}

func (s *calendarService) DayAgenda(ctx context.Context, date civil.Date, criteria calendar.Criteria) (*calendar.DayAgenda, error) {
	posts, err := s.pr.ListByDateRange(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("error loading posts: %w", err)
	}
	campaigns, err := s.cr.ListOverlapping(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("error loading campaigns: %w", err)
	}

	agenda := calendar.BuildDayAgenda(date, campaigns, posts, criteria)
	return &agenda, nil
}
