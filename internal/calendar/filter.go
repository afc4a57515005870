package calendar

import (
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/samber/lo"
)

// Criteria narrows a post collection. An empty dimension places no
// constraint; non-empty dimensions must all match.
type Criteria struct {
	Platforms   []models.Platform   `json:"platforms,omitempty"`
	CampaignIDs []string            `json:"campaign_ids,omitempty"`
	Statuses    []models.PostStatus `json:"statuses,omitempty"`
}

func (c Criteria) IsEmpty() bool {
	return len(c.Platforms) == 0 && len(c.CampaignIDs) == 0 && len(c.Statuses) == 0
}

// Match reports whether a single post satisfies every non-empty dimension.
// A post without a campaign never satisfies a campaign constraint.
func (c Criteria) Match(p models.Post) bool {
	if len(c.Platforms) > 0 && !lo.Contains(c.Platforms, p.Platform) {
		return false
	}
	if len(c.CampaignIDs) > 0 && (!p.HasCampaign() || !lo.Contains(c.CampaignIDs, p.CampaignID)) {
		return false
	}
	if len(c.Statuses) > 0 && !lo.Contains(c.Statuses, p.Status) {
		return false
	}
	return true
}

// FilterPosts returns a new slice holding the posts that match c, in input
// order. posts is never modified.
func FilterPosts(posts []models.Post, c Criteria) []models.Post {
	return lo.Filter(posts, func(p models.Post, _ int) bool {
		return c.Match(p)
	})
}
