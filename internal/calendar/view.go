package calendar

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/models"
)

type DayCell struct {
	Date      civil.Date        `json:"date"`
	InMonth   bool              `json:"in_month"`
	Campaigns []models.Campaign `json:"campaigns"`
	Groups    []TimeGroup       `json:"groups"`
	PostCount int               `json:"post_count"`
}

type MonthView struct {
	Month        string      `json:"month"`
	WeekStartsOn string      `json:"week_starts_on"`
	Weeks        [][]DayCell `json:"weeks"`
}

type DayAgenda struct {
	Date      civil.Date        `json:"date"`
	Campaigns []models.Campaign `json:"campaigns"`
	Groups    []TimeGroup       `json:"groups"`
}

// BuildMonthView lays the filtered posts and the campaign overlay onto the
// month grid of anchor.
func BuildMonthView(anchor civil.Date, weekStart time.Weekday, campaigns []models.Campaign, posts []models.Post, criteria Criteria) MonthView {
	view := MonthView{
		Month:        monthLabel(anchor),
		WeekStartsOn: models.Weekday(normalizeWeekday(weekStart)).String(),
	}

	grid := BuildMonthGrid(anchor, weekStart)
	if len(grid) == 0 {
		return view
	}

	index := NewCampaignIndex(campaigns)
	filtered := FilterPosts(posts, criteria)
	byDate := make(map[civil.Date][]models.Post)
	for _, p := range filtered {
		byDate[p.Date] = append(byDate[p.Date], p)
	}

	view.Weeks = make([][]DayCell, len(grid))
	for w, week := range grid {
		cells := make([]DayCell, len(week))
		for i, d := range week {
			dayPosts := byDate[d]
			cells[i] = DayCell{
				Date:      d,
				InMonth:   SameMonth(d, anchor),
				Campaigns: index.Active(d),
				Groups:    GroupByTime(dayPosts),
				PostCount: len(dayPosts),
			}
		}
		view.Weeks[w] = cells
	}
	return view
}

// BuildDayAgenda returns the grouped agenda of a single day.
func BuildDayAgenda(date civil.Date, campaigns []models.Campaign, posts []models.Post, criteria Criteria) DayAgenda {
	return DayAgenda{
		Date:      date,
		Campaigns: ActiveCampaigns(date, campaigns),
		Groups:    GroupByTime(PostsForDate(date, FilterPosts(posts, criteria))),
	}
}

func monthLabel(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.In(time.UTC).Format("2006-01")
}
