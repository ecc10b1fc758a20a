package cart

import (
	"context"
	"sync"
)

// Store persists session carts keyed by an opaque cart token. Load returns
// an empty cart for an unknown token; carts are created lazily.
type Store interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

// MemoryStore keeps carts in process memory. It is the default when no
// Redis is configured; carts vanish on restart, which matches the
// storefront's session-scoped cart semantics.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (s *MemoryStore) Load(_ context.Context, token string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.carts[token]
	if !ok {
		return New(), nil
	}
	copied := Cart{Items: append([]Item(nil), stored.Items...)}
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, token string, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[token] = Cart{Items: append([]Item(nil), cart.Items...)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}
