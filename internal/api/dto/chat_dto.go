package dto

import "github.com/agrolink/marketplace-service/internal/domain"

// SendMessageRequest payload for an outgoing message. Image, when present,
// carries the base64-encoded original upload; the server downscales and
// re-encodes it before storing.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Image      string `json:"image,omitempty"`
}

// MessageView is a message as rendered in a thread.
type MessageView struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Image      string `json:"image,omitempty"`
	Timestamp  int64  `json:"timestamp"`
	Read       bool   `json:"read"`
}

// ConversationView is one entry of the conversation list.
type ConversationView struct {
	CounterpartID string `json:"counterpart_id"`
	DisplayName   string `json:"display_name"`
	Preview       string `json:"preview"`
}

// AskRequest payload for the assistant.
type AskRequest struct {
	Prompt string `json:"prompt"`
}

// AskResponse reply from the assistant.
type AskResponse struct {
	Reply string `json:"reply"`
}

// Messages maps domain messages to views.
func Messages(msgs []domain.Message) []MessageView {
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{
			ID:         m.ID,
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			Content:    m.Content,
			Image:      m.Image,
			Timestamp:  m.Timestamp,
			Read:       m.Read,
		})
	}
	return out
}
