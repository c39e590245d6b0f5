package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agrolink/marketplace-service/internal/api/dto"
	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/service"
)

// UsersHandler exposes registration, login and session endpoints.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, token, exp, err := h.identity.Register(c.Context(), service.RegisterInput{
		RealName: req.RealName,
		Role:     domain.Role(req.Role),
		Location: req.Location,
		Items:    dto.ToItems(req.Items),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.OwnUser(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "id required")
	}

	user, token, exp, err := h.identity.Login(c.Context(), req.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.OwnUser(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if err := h.identity.Logout(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Session handles GET /auth/session, returning the persisted session state
// so a reloading client can reattach.
func (h *UsersHandler) Session(c *fiber.Ctx) error {
	session := h.identity.ActiveSession(c.Context())
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"active_user_id": session.ActiveUserID,
			"language":       session.Language,
		},
	})
}

// SetLanguage handles PUT /auth/session/language.
func (h *UsersHandler) SetLanguage(c *fiber.Ctx) error {
	var req dto.SetLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.identity.SetLanguage(c.Context(), req.Language); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"language": req.Language}})
}
