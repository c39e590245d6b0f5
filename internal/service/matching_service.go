package service

import (
	"context"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/repository"
)

// MatchFilters are the optional explicit filters for a match query. When
// either field is set, the filters replace the shared-item heuristic
// entirely.
type MatchFilters struct {
	ItemName string
	Location string
}

func (f MatchFilters) active() bool {
	return f.ItemName != "" || f.Location != ""
}

// MatchingService derives counterpart candidates for a user.
type MatchingService struct {
	users repository.UserRepository
}

// NewMatchingService builds the service.
func NewMatchingService(users repository.UserRepository) *MatchingService {
	return &MatchingService{users: users}
}

// FindMatches runs the matching over the full user collection.
func (s *MatchingService) FindMatches(ctx context.Context, current *domain.User, filters MatchFilters) []domain.User {
	return Match(*current, s.users.List(ctx), filters)
}

// Match restricts candidates to the opposite role and then applies either
// the explicit filters (AND-ed, overriding the default heuristic) or the
// shared-item-name intersection. Input order is preserved; there is no
// ranking and no pagination.
func Match(current domain.User, all []domain.User, filters MatchFilters) []domain.User {
	target := current.Role.Opposite()

	var out []domain.User
	for _, candidate := range all {
		if candidate.Role != target {
			continue
		}

		if filters.active() {
			if filters.ItemName != "" && !candidate.HasItemNamed(filters.ItemName) {
				continue
			}
			if filters.Location != "" && candidate.Location != filters.Location {
				continue
			}
			out = append(out, candidate)
			continue
		}

		if sharesItemName(current, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// sharesItemName reports whether the two listings intersect by exact item
// name.
func sharesItemName(a, b domain.User) bool {
	for _, item := range a.Items {
		if b.HasItemNamed(item.Name) {
			return true
		}
	}
	return false
}
