package service

import (
	"context"
	"math"
	"time"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/events"
	"github.com/agrolink/marketplace-service/internal/repository"
)

// ReputationService appends ratings and maintains the derived trust score.
type ReputationService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewReputationService builds the service.
func NewReputationService(users repository.UserRepository, dispatcher events.Dispatcher) *ReputationService {
	return &ReputationService{users: users, dispatcher: dispatcher, now: time.Now}
}

// AddRating appends the rating to the target user, recomputes the trust
// score and writes both back in a single collection rewrite. An unknown
// target is a silent no-op. The value is not range-checked here; the caller
// is expected to constrain it to 1..5.
func (s *ReputationService) AddRating(ctx context.Context, targetUserID string, rating domain.Rating) error {
	user, ok := s.users.GetByID(ctx, targetUserID)
	if !ok {
		return nil
	}

	if rating.Timestamp == 0 {
		rating.Timestamp = s.now().UnixMilli()
	}
	user.Ratings = append(user.Ratings, rating)
	user.TrustScore = TrustScore(user.Ratings)

	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type: events.EventRatingAdded,
			Payload: events.RatingAddedPayload{
				TargetUserID: targetUserID,
				FromUserID:   rating.FromUserID,
				Value:        rating.Value,
				TrustScore:   user.TrustScore,
			},
		})
	}
	return nil
}

// TrustScore is the arithmetic mean of the rating values, rounded to one
// decimal place. An empty history scores zero.
func TrustScore(ratings []domain.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
