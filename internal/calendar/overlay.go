package calendar

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/samber/lo"
)

// ActiveCampaigns returns the campaigns whose window covers date, in input order.
func ActiveCampaigns(date civil.Date, campaigns []models.Campaign) []models.Campaign {
	return lo.Filter(campaigns, func(c models.Campaign, _ int) bool {
		return c.Covers(date)
	})
}

// CampaignIndex answers ActiveCampaigns for many dates over the same campaign
// set. Results are identical to ActiveCampaigns, including order.
type CampaignIndex struct {
	campaigns []models.Campaign
	// byStart holds positions into campaigns ordered by start date.
	byStart []int
}

func NewCampaignIndex(campaigns []models.Campaign) *CampaignIndex {
	byStart := make([]int, len(campaigns))
	for i := range byStart {
		byStart[i] = i
	}
	sort.SliceStable(byStart, func(i, j int) bool {
		return campaigns[byStart[i]].StartDate.Before(campaigns[byStart[j]].StartDate)
	})
	return &CampaignIndex{campaigns: campaigns, byStart: byStart}
}

func (idx *CampaignIndex) Active(date civil.Date) []models.Campaign {
	// Only campaigns starting on or before date can cover it.
	n := sort.Search(len(idx.byStart), func(i int) bool {
		return idx.campaigns[idx.byStart[i]].StartDate.After(date)
	})

	hits := make([]int, 0, n)
	for _, pos := range idx.byStart[:n] {
		if !idx.campaigns[pos].EndDate.Before(date) {
			hits = append(hits, pos)
		}
	}
	sort.Ints(hits)

	active := make([]models.Campaign, 0, len(hits))
	for _, pos := range hits {
		active = append(active, idx.campaigns[pos])
	}
	return active
}

func (idx *CampaignIndex) Len() int {
	return len(idx.campaigns)
}

// CampaignLookup resolves post campaign references by id. Missing ids, such
// as campaigns deleted after posts referenced them, resolve to nothing.
type CampaignLookup map[string]models.Campaign

func NewCampaignLookup(campaigns []models.Campaign) CampaignLookup {
	return lo.Associate(campaigns, func(c models.Campaign) (string, models.Campaign) {
		return c.ID, c
	})
}

func (l CampaignLookup) Resolve(id string) (models.Campaign, bool) {
	if id == "" {
		return models.Campaign{}, false
	}
	c, ok := l[id]
	return c, ok
}
