package transfer

type CampaignInput struct {
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
