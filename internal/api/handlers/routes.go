package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Settings *SettingsHandler
	Calendar *CalendarHandler
	Post     *PostHandler
	Campaign *CampaignHandler
	Approval *ApprovalHandler
	Media    *MediaHandler
}

// Register mounts the login flow on app and everything else under /api
// behind requireAuth.
func Register(app *fiber.App, requireAuth fiber.Handler, h Handlers) {
	if h.Auth != nil {
		app.Get("/login", h.Auth.Login)
		app.Get("/login/callback", h.Auth.LoginCallbackHandler)
	}

	api := app.Group("/api")
	api.Use(requireAuth)

	api.Get("/user/info", h.User.GetUserInfo)
	api.Get("/settings", h.Settings.GetSettingsInfo)
	api.Put("/settings", h.Settings.UpdateSettings)

	api.Get("/calendar/month", h.Calendar.Month)
	api.Get("/calendar/day", h.Calendar.Day)

	api.Get("/posts", h.Post.ListPosts)
	api.Post("/posts", h.Post.CreatePost)
	api.Get("/posts/:id", h.Post.GetPost)
	api.Put("/posts/:id", h.Post.UpdatePost)
	api.Delete("/posts/:id", h.Post.RemovePost)
	api.Post("/posts/:id/submit", h.Approval.Submit)
	api.Get("/posts/:id/approvals", h.Approval.History)
	api.Get("/posts/:id/media", h.Media.ListMedia)
	api.Post("/posts/:id/media", h.Media.UploadMedia)

	api.Get("/campaigns", h.Campaign.ListCampaigns)
	api.Post("/campaigns", h.Campaign.CreateCampaign)
	api.Get("/campaigns/active", h.Campaign.ActiveCampaigns)
	api.Get("/campaigns/:id", h.Campaign.GetCampaign)
	api.Put("/campaigns/:id", h.Campaign.UpdateCampaign)
	api.Delete("/campaigns/:id", h.Campaign.RemoveCampaign)

	api.Get("/approvals", h.Approval.ListApprovals)
	api.Get("/approvals/:id", h.Approval.GetApproval)
	api.Post("/approvals/:id/approve", h.Approval.Approve)
	api.Post("/approvals/:id/reject", h.Approval.Reject)
}
