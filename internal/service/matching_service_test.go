package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/persistence"
	"github.com/agrolink/marketplace-service/internal/repository"
)

func userWithItems(id string, role domain.Role, location string, itemNames ...string) domain.User {
	items := make([]domain.CropItem, 0, len(itemNames))
	for _, name := range itemNames {
		items = append(items, domain.CropItem{Name: name, Price: 20, Area: location, Quantity: "100kg"})
	}
	return domain.User{
		ID:          id,
		DisplayName: role.Label() + id,
		Role:        role,
		Location:    location,
		Items:       items,
	}
}

func TestMatch_SharedItemHeuristic(t *testing.T) {
	u1 := userWithItems("producer_0001", domain.RoleProducer, "Punjab", "Wheat")
	u2 := userWithItems("buyer_0002", domain.RoleBuyer, "Maharashtra", "Wheat")

	got := Match(u1, []domain.User{u1, u2}, MatchFilters{})
	require.Len(t, got, 1)
	assert.Equal(t, "buyer_0002", got[0].ID)

	// a counterpart with no overlapping item stays out
	u3 := userWithItems("buyer_0003", domain.RoleBuyer, "Punjab", "Rice")
	got = Match(u1, []domain.User{u1, u2, u3}, MatchFilters{})
	require.Len(t, got, 1)
	assert.Equal(t, "buyer_0002", got[0].ID)
}

func TestMatch_NeverReturnsSameRole(t *testing.T) {
	current := userWithItems("producer_0001", domain.RoleProducer, "Punjab", "Wheat")
	all := []domain.User{
		current,
		userWithItems("producer_0002", domain.RoleProducer, "Punjab", "Wheat"),
		userWithItems("buyer_0003", domain.RoleBuyer, "Punjab", "Wheat"),
	}

	for _, filters := range []MatchFilters{{}, {ItemName: "Wheat"}, {Location: "Punjab"}} {
		for _, match := range Match(current, all, filters) {
			assert.Equal(t, domain.RoleBuyer, match.Role)
		}
	}
}

func TestMatch_ExplicitFiltersOverrideHeuristic(t *testing.T) {
	current := userWithItems("producer_0001", domain.RoleProducer, "Punjab", "Wheat")
	// zero shared items with current, but matches both filters
	candidate := userWithItems("buyer_0002", domain.RoleBuyer, "Gujarat", "Rice")

	got := Match(current, []domain.User{current, candidate}, MatchFilters{ItemName: "Rice"})
	require.Len(t, got, 1, "filter match must bypass the shared-item heuristic")
	assert.Equal(t, "buyer_0002", got[0].ID)

	got = Match(current, []domain.User{current, candidate}, MatchFilters{Location: "Gujarat"})
	require.Len(t, got, 1)

	// both filters AND-ed
	got = Match(current, []domain.User{current, candidate}, MatchFilters{ItemName: "Rice", Location: "Punjab"})
	assert.Empty(t, got)

	got = Match(current, []domain.User{current, candidate}, MatchFilters{ItemName: "Rice", Location: "Gujarat"})
	assert.Len(t, got, 1)
}

func TestMatch_PreservesInputOrder(t *testing.T) {
	current := userWithItems("producer_0001", domain.RoleProducer, "Punjab", "Wheat")
	all := []domain.User{
		userWithItems("buyer_0004", domain.RoleBuyer, "Bihar", "Wheat"),
		current,
		userWithItems("buyer_0002", domain.RoleBuyer, "Punjab", "Wheat"),
		userWithItems("buyer_0003", domain.RoleBuyer, "Gujarat", "Wheat"),
	}

	got := Match(current, all, MatchFilters{})
	require.Len(t, got, 3)
	assert.Equal(t, "buyer_0004", got[0].ID)
	assert.Equal(t, "buyer_0002", got[1].ID)
	assert.Equal(t, "buyer_0003", got[2].ID)
}

func TestMatchingService_ReadsFullCollection(t *testing.T) {
	ctx := context.Background()
	users := repository.NewUserRepository(persistence.NewMemoryStore())

	producer := userWithItems("producer_0001", domain.RoleProducer, "Punjab", "Wheat")
	buyer := userWithItems("buyer_0002", domain.RoleBuyer, "Punjab", "Wheat")
	require.NoError(t, users.Save(ctx, &producer))
	require.NoError(t, users.Save(ctx, &buyer))

	svc := NewMatchingService(users)
	got := svc.FindMatches(ctx, &producer, MatchFilters{})
	require.Len(t, got, 1)
	assert.Equal(t, "buyer_0002", got[0].ID)
}
