package transfer

// PostInput is the create/update payload of a post. Dates are YYYY-MM-DD and
// times HH:MM; an empty time leaves the post unscheduled within its day.
type PostInput struct {
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Platform   string `json:"platform"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	CampaignID string `json:"campaign_id"`
}

// PostFilter is the query form of calendar criteria. Each field is a comma
// separated list; empty means no constraint.
type PostFilter struct {
	Platforms string `query:"platform"`
	Campaigns string `query:"campaign"`
	Statuses  string `query:"status"`
}
