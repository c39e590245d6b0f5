package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/agrolink/marketplace-service/internal/events"
)

// NotificationService logs domain events as they happen. It stands in for
// outbound notification channels this deployment does not have.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventRatingAdded, n.handleRatingAdded)
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRatingAdded(_ context.Context, event events.Event) error {
	n.logger.Info("RatingAdded", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMessageSent(_ context.Context, event events.Event) error {
	n.logger.Info("MessageSent", zap.Any("payload", event.Payload))
	return nil
}
