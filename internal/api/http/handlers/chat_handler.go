package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agrolink/marketplace-service/internal/api/dto"
	"github.com/agrolink/marketplace-service/internal/auth"
	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/service"
)

// ChatHandler exposes conversation views and message sending.
type ChatHandler struct {
	chat        *service.ChatService
	identity    *service.IdentityService
	attachments *service.AttachmentService
}

// NewChatHandler constructs handler.
func NewChatHandler(chat *service.ChatService, identity *service.IdentityService, attachments *service.AttachmentService) *ChatHandler {
	return &ChatHandler{chat: chat, identity: identity, attachments: attachments}
}

// Conversations handles GET /api/conversations?with=<id>. The optional
// `with` id is included even before any message exists for it.
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	ids := h.chat.ListConversations(c.Context(), current.ID, c.Query("with"))

	views := make([]dto.ConversationView, 0, len(ids))
	for _, id := range ids {
		displayName := id
		if user, ok := h.identity.FindByID(c.Context(), id); ok {
			displayName = user.DisplayName
		}
		views = append(views, dto.ConversationView{
			CounterpartID: id,
			DisplayName:   displayName,
			Preview:       h.chat.PreviewFor(c.Context(), current.ID, id),
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"conversations": views}})
}

// Thread handles GET /api/conversations/:counterpartId/messages.
func (h *ChatHandler) Thread(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	thread := h.chat.ThreadFor(c.Context(), current.ID, c.Params("counterpartId"))
	return c.JSON(fiber.Map{"data": fiber.Map{"messages": dto.Messages(thread)}})
}

// Send handles POST /api/messages. An attached image arrives as base64 of
// the original upload and is downscaled and re-encoded before storage.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	current, _ := auth.CurrentUser(c)

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	image := ""
	if req.Image != "" {
		raw, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "image must be base64 encoded")
		}
		image, err = h.attachments.Process(raw)
		if err != nil {
			return err
		}
	}

	msg, err := h.chat.SendMessage(c.Context(), service.SendMessageInput{
		SenderID:   current.ID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Image:      image,
	})
	if err != nil {
		return err
	}

	view := dto.Messages([]domain.Message{*msg})[0]
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"message": view}})
}
