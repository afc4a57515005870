package calendar

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/samber/lo"
)

// NoTimeKey groups posts that have no scheduled clock time. It always sorts last.
const NoTimeKey = "No time"

// TimeGroup is one time-of-day bucket of a day's agenda.
type TimeGroup struct {
	Key   string        `json:"key"`
	Time  *models.Clock `json:"time,omitempty"`
	Posts []models.Post `json:"posts"`
}

// PostsForDate returns the posts scheduled on date, in input order.
func PostsForDate(date civil.Date, posts []models.Post) []models.Post {
	return lo.Filter(posts, func(p models.Post, _ int) bool {
		return p.Date == date
	})
}

// TimeKey is the grouping key of a post: its HH:MM time or NoTimeKey.
func TimeKey(p models.Post) string {
	if p.Time == nil {
		return NoTimeKey
	}
	return p.Time.String()
}

// GroupByTimeKey groups posts by TimeKey. Map iteration order is undefined;
// use GroupByTime for presentation order.
func GroupByTimeKey(posts []models.Post) map[string][]models.Post {
	return lo.GroupBy(posts, TimeKey)
}

// GroupByTime groups posts by time of day. Groups are ordered by clock value
// with the NoTimeKey group last. Posts inside a group are ordered by creation
// time, then id.
func GroupByTime(posts []models.Post) []TimeGroup {
	byKey := GroupByTimeKey(posts)

	groups := make([]TimeGroup, 0, len(byKey))
	for key, members := range byKey {
		g := TimeGroup{Key: key, Posts: sortedGroup(members)}
		if key != NoTimeKey {
			clock := *members[0].Time
			g.Time = &clock
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Time, groups[j].Time
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return groups
}

// GroupKeys returns the ordered keys of groups.
func GroupKeys(groups []TimeGroup) []string {
	return lo.Map(groups, func(g TimeGroup, _ int) string {
		return g.Key
	})
}

func sortedGroup(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
