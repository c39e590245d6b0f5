package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/events"
	"github.com/agrolink/marketplace-service/internal/repository"
	"github.com/agrolink/marketplace-service/pkg/util"
)

const (
	previewMaxRunes  = 25
	photoPlaceholder = "[photo]"

	// emptyThreadPreview is the sentinel for a conversation with no
	// messages yet.
	emptyThreadPreview = "No conversations yet"
)

// ChatService derives conversation views from the global message log and
// appends new messages to it. Reads are served from a snapshot that a
// background refresher re-reads on a fixed interval, so a counterpart's new
// message becomes visible within the staleness window rather than
// immediately.
type ChatService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	interval   time.Duration
	now        func() time.Time

	mu       sync.RWMutex
	snapshot []domain.Message
}

// SendMessageInput describes an outgoing message.
type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Content    string
	Image      string
}

// NewChatService builds the service. The snapshot starts empty; call
// Refresh (or start the refresher worker) before serving reads.
func NewChatService(messages repository.MessageRepository, dispatcher events.Dispatcher, logger *zap.Logger, refreshInterval time.Duration) *ChatService {
	return &ChatService{
		messages:   messages,
		dispatcher: dispatcher,
		logger:     logger,
		interval:   refreshInterval,
		now:        time.Now,
	}
}

// Refresh re-reads the entire message collection into the snapshot.
func (s *ChatService) Refresh(ctx context.Context) {
	msgs := s.messages.List(ctx)
	s.mu.Lock()
	s.snapshot = msgs
	s.mu.Unlock()
}

// RunRefresher refreshes immediately and then on the configured interval
// until the context is cancelled.
func (s *ChatService) RunRefresher(ctx context.Context) {
	s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// SendMessage appends to the global log unconditionally and makes the
// message visible in the local snapshot right away.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error) {
	if input.ReceiverID == "" {
		return nil, util.NewValidationError("receiver is required", nil)
	}
	if strings.TrimSpace(input.Content) == "" && input.Image == "" {
		return nil, util.NewValidationError("message needs text or an image", nil)
	}

	now := s.now()
	msg := domain.Message{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Image:      input.Image,
		Timestamp:  now.UnixMilli(),
		Read:       false,
	}

	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = append(s.snapshot, msg)
	s.mu.Unlock()

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type: events.EventMessageSent,
			Payload: events.MessageSentPayload{
				MessageID:  msg.ID,
				SenderID:   msg.SenderID,
				ReceiverID: msg.ReceiverID,
				HasImage:   msg.Image != "",
			},
		})
	}
	return &msg, nil
}

// ListConversations returns the distinct counterpart ids of every thread
// the user participates in, first-seen order. A freshly opened counterpart
// that has no messages yet is prepended so it still shows in the list.
func (s *ChatService) ListConversations(_ context.Context, userID, openCounterpartID string) []string {
	return conversationsOf(s.snapshotView(), userID, openCounterpartID)
}

// ThreadFor returns the ordered two-party thread between the users.
func (s *ChatService) ThreadFor(_ context.Context, userA, userB string) []domain.Message {
	return threadOf(s.snapshotView(), userA, userB)
}

// PreviewFor returns the one-line preview for the conversation list entry.
func (s *ChatService) PreviewFor(_ context.Context, userID, counterpartID string) string {
	return previewOf(s.snapshotView(), userID, counterpartID)
}

func (s *ChatService) snapshotView() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// conversationsOf scans the log once, collecting each counterpart the first
// time it appears.
func conversationsOf(msgs []domain.Message, userID, openCounterpartID string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range msgs {
		if !m.Involves(userID) {
			continue
		}
		other := m.CounterpartOf(userID)
		if seen[other] {
			continue
		}
		seen[other] = true
		out = append(out, other)
	}

	if openCounterpartID != "" && !seen[openCounterpartID] {
		out = append([]string{openCounterpartID}, out...)
	}
	return out
}

// threadOf filters the two-party thread and sorts ascending by timestamp.
// The sort is stable so timestamp ties keep log insertion order.
func threadOf(msgs []domain.Message, userA, userB string) []domain.Message {
	var out []domain.Message
	for _, m := range msgs {
		if m.Between(userA, userB) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// previewOf renders the latest message of the thread: a placeholder token
// for image-only messages, otherwise the text truncated to 25 characters.
func previewOf(msgs []domain.Message, userID, counterpartID string) string {
	thread := threadOf(msgs, userID, counterpartID)
	if len(thread) == 0 {
		return emptyThreadPreview
	}

	last := thread[len(thread)-1]
	if last.Image != "" && last.Content == "" {
		return photoPlaceholder
	}

	runes := []rune(last.Content)
	if len(runes) > previewMaxRunes {
		return string(runes[:previewMaxRunes]) + "..."
	}
	return last.Content
}
