package worker

import (
	"context"

	"github.com/agrolink/marketplace-service/internal/service"
)

// StartMessageRefresher runs the chat snapshot refresher until the context
// is cancelled, keeping message reads within the configured staleness
// window.
func StartMessageRefresher(ctx context.Context, chat *service.ChatService) {
	if chat == nil {
		return
	}
	go chat.RunRefresher(ctx)
}
