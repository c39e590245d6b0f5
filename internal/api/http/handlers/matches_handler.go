package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrolink/marketplace-service/internal/api/dto"
	"github.com/agrolink/marketplace-service/internal/auth"
	"github.com/agrolink/marketplace-service/internal/service"
)

// MatchesHandler exposes the matching engine.
type MatchesHandler struct {
	matching *service.MatchingService
}

// NewMatchesHandler constructs handler.
func NewMatchesHandler(matching *service.MatchingService) *MatchesHandler {
	return &MatchesHandler{matching: matching}
}

// List handles GET /api/matches?item=<name>&location=<region>. Without
// query filters the shared-item heuristic applies.
func (h *MatchesHandler) List(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	matches := h.matching.FindMatches(c.Context(), current, service.MatchFilters{
		ItemName: c.Query("item"),
		Location: c.Query("location"),
	})

	views := make([]dto.PublicUserView, 0, len(matches))
	for i := range matches {
		views = append(views, dto.PublicUser(&matches[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"matches": views}})
}
