package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolink/marketplace-service/internal/config"
	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/persistence"
	"github.com/agrolink/marketplace-service/internal/repository"
	"github.com/agrolink/marketplace-service/pkg/util"
)

func newTestIdentity(t *testing.T) (context.Context, *IdentityService, repository.SessionRepository) {
	t.Helper()
	store := persistence.NewMemoryStore()
	sessions := repository.NewSessionRepository(store)
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", SessionTokenTTLMinutes: 60}}
	svc := NewIdentityService(cfg, IdentityDependencies{
		UserRepo:    repository.NewUserRepository(store),
		SessionRepo: sessions,
	})
	return context.Background(), svc, sessions
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		RealName: "Ramesh Kumar",
		Role:     domain.RoleProducer,
		Location: "Punjab",
		Items:    []domain.CropItem{{Name: "Wheat", Price: 20, Quantity: "500kg"}},
	}
}

func TestRegister_GeneratesIDAndEstablishesSession(t *testing.T) {
	ctx, svc, sessions := newTestIdentity(t)

	user, token, exp, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^producer_\d{4}$`), user.ID)
	assert.Regexp(t, regexp.MustCompile(`^Producer\d{4}$`), user.DisplayName)
	assert.Equal(t, domain.RoleProducer, user.Role)
	assert.NotZero(t, user.JoinedAt)
	assert.Zero(t, user.TrustScore)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	assert.Equal(t, "Punjab", user.Items[0].Area, "item area defaults to the user's location")

	session := sessions.Load(ctx)
	assert.Equal(t, user.ID, session.ActiveUserID)
}

func TestRegister_ValidationFailures(t *testing.T) {
	ctx, svc, _ := newTestIdentity(t)

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty real name", func(in *RegisterInput) { in.RealName = "  " }},
		{"bad role", func(in *RegisterInput) { in.Role = "ADMIN" }},
		{"empty location", func(in *RegisterInput) { in.Location = "" }},
		{"no items", func(in *RegisterInput) { in.Items = nil }},
		{"item without name", func(in *RegisterInput) { in.Items[0].Name = "" }},
		{"item without quantity", func(in *RegisterInput) { in.Items[0].Quantity = " " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			_, _, _, err := svc.Register(ctx, input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
		})
	}
}

func TestLogin_UnknownIDIsNotFound(t *testing.T) {
	ctx, svc, sessions := newTestIdentity(t)

	_, _, _, err := svc.Login(ctx, "producer_0000")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
	assert.Empty(t, sessions.Load(ctx).ActiveUserID, "failed login does not touch the session")
}

func TestLoginLogout_SessionLifecycle(t *testing.T) {
	ctx, svc, sessions := newTestIdentity(t)

	registered, _, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	require.NoError(t, svc.SetLanguage(ctx, "hi"))

	require.NoError(t, svc.Logout(ctx))
	session := sessions.Load(ctx)
	assert.Empty(t, session.ActiveUserID)
	assert.Equal(t, "hi", session.Language, "logout keeps the language preference")

	user, token, _, err := svc.Login(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, sessions.Load(ctx).ActiveUserID)
}

func TestSetLanguage_RejectsUnknownTag(t *testing.T) {
	ctx, svc, _ := newTestIdentity(t)

	err := svc.SetLanguage(ctx, "xx")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestUpdateProfile_EditsMutableFieldsOnly(t *testing.T) {
	ctx, svc, _ := newTestIdentity(t)

	registered, _, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, registered.ID, "New Name", "Gujarat")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.RealName)
	assert.Equal(t, "Gujarat", updated.Location)
	assert.Equal(t, registered.ID, updated.ID)
	assert.Equal(t, registered.Role, updated.Role)
	assert.Equal(t, registered.JoinedAt, updated.JoinedAt)
}

func TestAddAndRemoveItem(t *testing.T) {
	ctx, svc, _ := newTestIdentity(t)

	registered, _, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	updated, err := svc.AddItem(ctx, registered.ID, domain.CropItem{Name: "Rice", Price: 30, Quantity: "200kg"})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "Rice", updated.Items[1].Name, "insertion order is display order")
	assert.Equal(t, registered.Location, updated.Items[1].Area)

	updated, err = svc.RemoveItem(ctx, registered.ID, 0)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Rice", updated.Items[0].Name)

	_, err = svc.RemoveItem(ctx, registered.ID, 5)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}
