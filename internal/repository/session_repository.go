package repository

import (
	"context"
	"encoding/json"

	"github.com/agrolink/marketplace-service/internal/persistence"
)

// Session is the small client state layered on top of the domain
// collections: which user is active and which display language is
// preferred. It is read once at startup and rewritten on explicit changes.
type Session struct {
	ActiveUserID string `json:"activeUserId,omitempty"`
	Language     string `json:"language,omitempty"`
}

// SessionRepository persists the session blob under its own store key,
// independent of the users and messages collections.
type SessionRepository interface {
	Load(ctx context.Context) Session
	Save(ctx context.Context, session Session) error
}

type sessionRepository struct {
	store persistence.Store
}

// NewSessionRepository returns a blob-store backed implementation.
func NewSessionRepository(store persistence.Store) SessionRepository {
	return &sessionRepository{store: store}
}

// Load reads the session; absence or corruption yields the zero session.
func (r *sessionRepository) Load(ctx context.Context) Session {
	raw, err := r.store.Get(ctx, sessionKey)
	if err != nil {
		return Session{}
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}
	}
	return session
}

// Save overwrites the session blob.
func (r *sessionRepository) Save(ctx context.Context, session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, sessionKey, raw)
}
