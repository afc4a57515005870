package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

type CampaignHandler struct {
	s service.CampaignService
}

func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{s: service}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var in transfer.CampaignInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	campaign, err := h.s.CreateCampaign(c.Context(), &in)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.s.List(c.Context())
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(campaigns)
}

// ActiveCampaigns lists the campaigns running on ?date=YYYY-MM-DD.
func (h *CampaignHandler) ActiveCampaigns(c *fiber.Ctx) error {
	date, err := service.ParseDate("date", c.Query("date"))
	if err != nil {
		return sendError(c, err)
	}

	campaigns, err := h.s.ActiveOn(c.Context(), date)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(campaigns)
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.s.CampaignInfo(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	var in transfer.CampaignInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	campaign, err := h.s.UpdateCampaign(c.Context(), c.Params("id"), &in)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(campaign)
}

func (h *CampaignHandler) RemoveCampaign(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
