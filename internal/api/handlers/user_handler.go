package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/service"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userInfo, err := h.s.GetUserInfo(c.Context(), GetUserID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(userInfo)
}
