package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agrolink/marketplace-service/internal/api/dto"
	"github.com/agrolink/marketplace-service/internal/auth"
	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/service"
	"github.com/agrolink/marketplace-service/pkg/util"
)

// ProfileHandler exposes profile viewing, editing, listings and ratings.
type ProfileHandler struct {
	identity   *service.IdentityService
	reputation *service.ReputationService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(identity *service.IdentityService, reputation *service.ReputationService) *ProfileHandler {
	return &ProfileHandler{identity: identity, reputation: reputation}
}

// Get handles GET /api/profile and GET /api/profile?id=<other>. The own
// profile includes the private real name; anyone else's does not.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	id := c.Query("id")
	if id == "" || id == current.ID {
		return c.JSON(fiber.Map{"data": dto.OwnUser(current)})
	}

	user, ok := h.identity.FindByID(c.Context(), id)
	if !ok {
		return util.NewNotFound("user", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.PublicUser(user)})
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.identity.UpdateProfile(c.Context(), current.ID, req.RealName, req.Location)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OwnUser(user)})
}

// AddItem handles POST /api/profile/items.
func (h *ProfileHandler) AddItem(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	var req dto.CropItemPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.identity.AddItem(c.Context(), current.ID, domain.CropItem{
		Name:        req.Name,
		Price:       req.Price,
		Area:        req.Area,
		Quantity:    req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.OwnUser(user)})
}

// RemoveItem handles DELETE /api/profile/items/:index.
func (h *ProfileHandler) RemoveItem(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid item index")
	}

	user, err := h.identity.RemoveItem(c.Context(), current.ID, index)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OwnUser(user)})
}

// Rate handles POST /api/users/:id/ratings. The rated user is looked up by
// the ledger itself; an unknown id is accepted and silently dropped.
func (h *ProfileHandler) Rate(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	var req dto.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Value < 1 || req.Value > 5 {
		return fiber.NewError(http.StatusBadRequest, "rating value must be between 1 and 5")
	}

	err := h.reputation.AddRating(c.Context(), c.Params("id"), domain.Rating{
		FromUserID: current.ID,
		Value:      req.Value,
		Comment:    req.Comment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"accepted": true}})
}
