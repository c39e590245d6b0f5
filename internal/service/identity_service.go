package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/agrolink/marketplace-service/internal/auth"
	"github.com/agrolink/marketplace-service/internal/config"
	"github.com/agrolink/marketplace-service/internal/domain"
	"github.com/agrolink/marketplace-service/internal/events"
	"github.com/agrolink/marketplace-service/internal/repository"
	"github.com/agrolink/marketplace-service/pkg/util"
)

// IdentityService coordinates registration, login and profile maintenance.
// The generated user id is the only credential; login is a lookup, not an
// authentication step.
type IdentityService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	now        func() time.Time
}

// IdentityDependencies bundles repo requirements for the identity service.
type IdentityDependencies struct {
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Dispatcher  events.Dispatcher
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	RealName string
	Role     domain.Role
	Location string
	Items    []domain.CropItem
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:      deps.UserRepo,
		sessions:   deps.SessionRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Register creates a new user, establishes the active session and returns a
// session token. The generated id carries a 4-digit random suffix; a
// collision with an existing id is not checked.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if strings.TrimSpace(input.RealName) == "" {
		return nil, "", time.Time{}, util.NewValidationError("real name is required", nil)
	}
	if !input.Role.Valid() {
		return nil, "", time.Time{}, util.NewValidationError("role must be PRODUCER or BUYER", nil)
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, "", time.Time{}, util.NewValidationError("location is required", nil)
	}
	if len(input.Items) == 0 {
		return nil, "", time.Time{}, util.NewValidationError("at least one item must be listed", nil)
	}
	items := make([]domain.CropItem, 0, len(input.Items))
	for _, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Quantity) == "" {
			return nil, "", time.Time{}, util.NewValidationError("item name and quantity are required", nil)
		}
		if item.Area == "" {
			item.Area = input.Location
		}
		items = append(items, item)
	}

	suffix := rand.Intn(10000)
	user := &domain.User{
		ID:          fmt.Sprintf("%s_%04d", strings.ToLower(string(input.Role)), suffix),
		DisplayName: fmt.Sprintf("%s%04d", input.Role.Label(), suffix),
		RealName:    strings.TrimSpace(input.RealName),
		Role:        input.Role,
		Location:    input.Location,
		Items:       items,
		Ratings:     []domain.Rating{},
		TrustScore:  0,
		JoinedAt:    s.now().UnixMilli(),
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.establishSession(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		Type: events.EventUserRegistered,
		Payload: events.UserRegisteredPayload{
			UserID:   user.ID,
			Role:     user.Role,
			Location: user.Location,
		},
	})
	return user, token, exp, nil
}

// Login reattaches to an existing user by id. An unknown id surfaces as a
// not-found failure, never as an exception.
func (s *IdentityService) Login(ctx context.Context, id string) (*domain.User, string, time.Time, error) {
	user, ok := s.users.GetByID(ctx, strings.TrimSpace(id))
	if !ok {
		return nil, "", time.Time{}, util.NewNotFound("user", map[string]any{"id": id})
	}

	token, exp, err := s.establishSession(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout clears the active session identifier. Persisted user data and the
// language preference are untouched.
func (s *IdentityService) Logout(ctx context.Context) error {
	session := s.sessions.Load(ctx)
	session.ActiveUserID = ""
	return s.sessions.Save(ctx, session)
}

// FindByID looks up a user; absence is a false return, not an error.
func (s *IdentityService) FindByID(ctx context.Context, id string) (*domain.User, bool) {
	return s.users.GetByID(ctx, id)
}

// ActiveSession returns the persisted session state.
func (s *IdentityService) ActiveSession(ctx context.Context) repository.Session {
	return s.sessions.Load(ctx)
}

// SetLanguage records the preferred display language in the session.
func (s *IdentityService) SetLanguage(ctx context.Context, lang string) error {
	if !domain.ValidLanguage(lang) {
		return util.NewValidationError("unknown language", map[string]any{"language": lang})
	}
	session := s.sessions.Load(ctx)
	session.Language = lang
	return s.sessions.Save(ctx, session)
}

// UpdateProfile edits the mutable profile fields of the user.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID, realName, location string) (*domain.User, error) {
	user, ok := s.users.GetByID(ctx, userID)
	if !ok {
		return nil, util.NewNotFound("user", map[string]any{"id": userID})
	}
	if strings.TrimSpace(realName) == "" {
		return nil, util.NewValidationError("real name is required", nil)
	}
	if strings.TrimSpace(location) == "" {
		return nil, util.NewValidationError("location is required", nil)
	}

	user.RealName = strings.TrimSpace(realName)
	user.Location = location
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddItem appends a listing to the user's items. The item area defaults to
// the user's location when not supplied; price is not range-checked.
func (s *IdentityService) AddItem(ctx context.Context, userID string, item domain.CropItem) (*domain.User, error) {
	user, ok := s.users.GetByID(ctx, userID)
	if !ok {
		return nil, util.NewNotFound("user", map[string]any{"id": userID})
	}
	if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Quantity) == "" {
		return nil, util.NewValidationError("item name and quantity are required", nil)
	}
	if item.Area == "" {
		item.Area = user.Location
	}

	user.Items = append(user.Items, item)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveItem deletes the listing at the given position.
func (s *IdentityService) RemoveItem(ctx context.Context, userID string, index int) (*domain.User, error) {
	user, ok := s.users.GetByID(ctx, userID)
	if !ok {
		return nil, util.NewNotFound("user", map[string]any{"id": userID})
	}
	if index < 0 || index >= len(user.Items) {
		return nil, util.NewValidationError("item index out of range", map[string]any{"index": index})
	}

	user.Items = append(user.Items[:index], user.Items[index+1:]...)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *IdentityService) establishSession(ctx context.Context, userID string) (string, time.Time, error) {
	session := s.sessions.Load(ctx)
	session.ActiveUserID = userID
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", time.Time{}, err
	}
	return s.tokenMgr.GenerateToken(userID)
}

func (s *IdentityService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
