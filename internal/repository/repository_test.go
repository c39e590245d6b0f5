package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/persistence"
)

func testUser(id string, role domain.Role) domain.User {
	return domain.User{
		ID:          id,
		DisplayName: role.Label() + "0001",
		RealName:    "Test Person",
		Role:        role,
		Location:    "Punjab",
		Items:       []domain.CropItem{{Name: "Wheat", Price: 20, Area: "Punjab", Quantity: "500kg"}},
		Ratings:     []domain.Rating{},
		JoinedAt:    1700000000000,
	}
}

func TestUserRepository_SaveUpsertsByID(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	repo := NewUserRepository(store)

	u1 := testUser("producer_0001", domain.RoleProducer)
	require.NoError(t, repo.Save(ctx, &u1))

	u2 := testUser("buyer_0002", domain.RoleBuyer)
	require.NoError(t, repo.Save(ctx, &u2))

	assert.Len(t, repo.List(ctx), 2)

	u1.RealName = "Renamed Person"
	require.NoError(t, repo.Save(ctx, &u1))

	users := repo.List(ctx)
	require.Len(t, users, 2, "save of an existing id must replace, not append")
	assert.Equal(t, "Renamed Person", users[0].RealName)
	assert.Equal(t, "producer_0001", users[0].ID, "stored order is preserved across upserts")
}

func TestUserRepository_GetByIDAbsence(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(persistence.NewMemoryStore())

	got, ok := repo.GetByID(ctx, "producer_9999")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMessageRepository_AppendKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(persistence.NewMemoryStore())

	require.NoError(t, repo.Append(ctx, domain.Message{ID: "1", SenderID: "a", ReceiverID: "b", Content: "first", Timestamp: 5}))
	require.NoError(t, repo.Append(ctx, domain.Message{ID: "2", SenderID: "b", ReceiverID: "a", Content: "second", Timestamp: 2}))

	msgs := repo.List(ctx)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content, "log order is append order, not timestamp order")
	assert.Equal(t, "second", msgs[1].Content)
}

func TestLoadCollection_CorruptBlobResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	require.NoError(t, store.Set(ctx, usersKey, []byte("{not json")))

	repo := NewUserRepository(store)
	assert.Empty(t, repo.List(ctx), "corrupt blobs are treated as an empty collection, not an error")

	// a subsequent save simply overwrites the corrupt blob
	u := testUser("producer_0001", domain.RoleProducer)
	require.NoError(t, repo.Save(ctx, &u))
	assert.Len(t, repo.List(ctx), 1)
}

func TestSaveCollection_RoundTripIdempotent(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()

	users := []domain.User{testUser("producer_0001", domain.RoleProducer), testUser("buyer_0002", domain.RoleBuyer)}
	require.NoError(t, saveCollection(ctx, store, usersKey, users))

	loaded := loadCollection[domain.User](ctx, store, usersKey)
	require.NoError(t, saveCollection(ctx, store, usersKey, loaded))
	reloaded := loadCollection[domain.User](ctx, store, usersKey)

	assert.Equal(t, loaded, reloaded)
}

// Two logical operations that each read, mutate and write back the whole
// collection race at the blob level: the second write silently discards the
// first one's change. The store makes no attempt to serialize this.
func TestSaveCollection_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()

	base := []domain.User{testUser("producer_0001", domain.RoleProducer)}
	require.NoError(t, saveCollection(ctx, store, usersKey, base))

	readerA := loadCollection[domain.User](ctx, store, usersKey)
	readerB := loadCollection[domain.User](ctx, store, usersKey)

	readerA = append(readerA, testUser("buyer_0002", domain.RoleBuyer))
	readerB = append(readerB, testUser("buyer_0003", domain.RoleBuyer))

	require.NoError(t, saveCollection(ctx, store, usersKey, readerA))
	require.NoError(t, saveCollection(ctx, store, usersKey, readerB))

	final := loadCollection[domain.User](ctx, store, usersKey)
	require.Len(t, final, 2)
	assert.Equal(t, "buyer_0003", final[1].ID)

	for _, u := range final {
		assert.NotEqual(t, "buyer_0002", u.ID, "the earlier racing write is lost")
	}
}

func TestSessionRepository_LoadSaveAndCorruption(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	repo := NewSessionRepository(store)

	assert.Equal(t, Session{}, repo.Load(ctx), "absent session loads as zero value")

	require.NoError(t, repo.Save(ctx, Session{ActiveUserID: "producer_0001", Language: "hi"}))
	assert.Equal(t, Session{ActiveUserID: "producer_0001", Language: "hi"}, repo.Load(ctx))

	require.NoError(t, store.Set(ctx, sessionKey, []byte("###")))
	assert.Equal(t, Session{}, repo.Load(ctx), "corrupt session loads as zero value")
}
