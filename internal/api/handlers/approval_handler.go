package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

type ApprovalHandler struct {
	s service.ApprovalService
}

func NewApprovalHandler(service service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{s: service}
}

// Submit sends the draft :id to review on behalf of the signed-in user.
func (h *ApprovalHandler) Submit(c *fiber.Ctx) error {
	approval, err := h.s.SubmitForApproval(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(approval)
}

func (h *ApprovalHandler) History(c *fiber.Ctx) error {
	approvals, err := h.s.History(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(approvals)
}

// ListApprovals serves the review queue. Only ?status=pending is supported;
// resolved approvals are reached through a post's history.
func (h *ApprovalHandler) ListApprovals(c *fiber.Ctx) error {
	status := c.Query("status", string(models.ApprovalStatusPending))
	if status != string(models.ApprovalStatusPending) {
		return sendError(c, &models.ValidationError{Field: "status", Message: "only pending approvals can be listed"})
	}

	approvals, err := h.s.ListPending(c.Context())
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(approvals)
}

func (h *ApprovalHandler) GetApproval(c *fiber.Ctx) error {
	approval, err := h.s.Get(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(approval)
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	review, err := parseReview(c)
	if err != nil {
		return badRequest(c, "Unable to parse json")
	}

	approval, err := h.s.Approve(c.Context(), c.Params("id"), GetUserID(c), review.Feedback)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(approval)
}

func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	review, err := parseReview(c)
	if err != nil {
		return badRequest(c, "Unable to parse json")
	}

	approval, err := h.s.Reject(c.Context(), c.Params("id"), GetUserID(c), review.Feedback)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(approval)
}

// parseReview allows an empty body.
func parseReview(c *fiber.Ctx) (transfer.ReviewInput, error) {
	var review transfer.ReviewInput
	if len(c.Body()) == 0 {
		return review, nil
	}
	err := c.BodyParser(&review)
	return review, err
}
