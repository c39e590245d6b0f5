package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/agrolink/marketplace-service/internal/api/dto"
	"github.com/agrolink/marketplace-service/internal/auth"
	"github.com/agrolink/marketplace-service/internal/service"
)

// AssistantHandler exposes the AI assistant boundary.
type AssistantHandler struct {
	assistant *service.AssistantService
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Ask handles POST /api/assistant. The reply is always a string; degraded
// collaborator states come back as fixed fallback text, not errors.
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return fiber.NewError(http.StatusBadRequest, "prompt required")
	}

	reply := h.assistant.Ask(c.Context(), req.Prompt, current.Role)
	return c.JSON(fiber.Map{"data": dto.AskResponse{Reply: reply}})
}
