package repository

import (
	"context"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/persistence"
)

// MessageRepository persists the global append-only message log as one
// blob. Messages are never mutated or deleted once appended.
type MessageRepository interface {
	List(ctx context.Context) []domain.Message
	Append(ctx context.Context, msg domain.Message) error
}

type messageRepository struct {
	store persistence.Store
}

// NewMessageRepository returns a blob-store backed implementation.
func NewMessageRepository(store persistence.Store) MessageRepository {
	return &messageRepository{store: store}
}

// List returns the full message log in insertion order.
func (r *messageRepository) List(ctx context.Context) []domain.Message {
	return loadCollection[domain.Message](ctx, r.store, messagesKey)
}

// Append adds the message to the end of the log and rewrites it.
func (r *messageRepository) Append(ctx context.Context, msg domain.Message) error {
	messages := r.List(ctx)
	messages = append(messages, msg)
	return saveCollection(ctx, r.store, messagesKey, messages)
}
