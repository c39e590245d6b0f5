package repository

import (
	"context"
	"encoding/json"

	"github.com/agrolink/marketplace-service/internal/persistence"
)

// Store key for each persisted collection.
const (
	usersKey    = "users"
	messagesKey = "messages"
	sessionKey  = "session"
)

// loadCollection reads and decodes the JSON array stored under key. An
// absent blob, a backend failure or a corrupt blob all come back as an
// empty collection; the caller never sees an error.
func loadCollection[T any](ctx context.Context, store persistence.Store, key string) []T {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// saveCollection overwrites the entire collection stored under key. The
// write replaces whatever is there; two racing callers resolve as
// last-write-wins.
func saveCollection[T any](ctx context.Context, store persistence.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, raw)
}
