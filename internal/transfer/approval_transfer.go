package transfer

type ReviewInput struct {
	Feedback string `json:"feedback"`
}
