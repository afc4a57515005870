package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var in transfer.PostInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	post, err := h.s.CreatePost(c.Context(), GetUserID(c), &in)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return sendError(c, err)
	}

	posts, err := h.s.List(c.Context(), criteria)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.s.PostInfo(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var in transfer.PostInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	post, err := h.s.UpdatePost(c.Context(), c.Params("id"), &in)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
