package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/contentplanner/configs"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/pkg/utils"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	state, err := utils.NewState()
	if err != nil {
		return sendError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/login",
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(h.s.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) LoginCallbackHandler(c *fiber.Ctx) error {
	if state := c.Cookies(stateCookie); state == "" || state != c.Query("state") {
		return badRequest(c, "login state mismatch, please sign in again")
	}
	c.ClearCookie(stateCookie)

	userID, err := h.s.LoginCallback(c.Context(), c.Query("code"))
	if err != nil {
		slog.Info("login failed", "error", err)
		return badRequest(c, "something went wrong")
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, userID, 24*time.Hour)
	if err != nil {
		return badRequest(c, "something went wrong")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}
