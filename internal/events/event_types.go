package events

import (
	"time"

	"github.com/agrolink/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventRatingAdded    EventType = "rating_added"
	EventMessageSent    EventType = "message_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string      `json:"user_id"`
	Role     domain.Role `json:"role"`
	Location string      `json:"location"`
}

// RatingAddedPayload payload.
type RatingAddedPayload struct {
	TargetUserID string  `json:"target_user_id"`
	FromUserID   string  `json:"from_user_id"`
	Value        int     `json:"value"`
	TrustScore   float64 `json:"trust_score"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID  string `json:"message_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	HasImage   bool   `json:"has_image"`
}
