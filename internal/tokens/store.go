package tokens

import (
	"context"
	"sync"
	"time"
)

// Store caches short-lived platform access tokens under opaque keys.
// Entries expire after their TTL; an expired key reads as absent.
type Store interface {
	Put(ctx context.Context, key, token string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
}

type entry struct {
	token string
	exp   time.Time
}

// MemoryStore is an in-process Store. Tokens are not durable across
// restarts; callers re-authenticate after a restart the same way they do
// after expiry.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreAt(time.Now)
}

// NewMemoryStoreAt returns a MemoryStore reading time from the given clock.
// Used by tests to simulate expiry.
func NewMemoryStoreAt(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		items: make(map[string]entry),
		now:   now,
	}
}

// Put stores token under key for ttl. Overwriting an existing key replaces
// the value and resets the expiry.
func (s *MemoryStore) Put(ctx context.Context, key, token string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.items[key] = entry{token: token, exp: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Get returns the token for key if present and unexpired. Expiry is not an
// error; the second return reports presence.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.exp) {
		delete(s.items, key)
		return "", false, nil
	}
	return e.token, true, nil
}

var _ Store = (*MemoryStore)(nil)
