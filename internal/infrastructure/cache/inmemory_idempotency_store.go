package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// sweepInterval bounds how often Reserve scans the whole map for expired keys.
const sweepInterval = 5 * time.Minute

// idempotencyKey is a reserved key. paymentID stays empty while the
// request that reserved it is still running.
type idempotencyKey struct {
	paymentID string
	expiresAt time.Time
}

// InMemoryIdempotencyStore keeps payment idempotency keys in process memory.
// It is used when Redis is disabled, which means a single server instance.
// Expired keys are swept opportunistically from Reserve.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	keys      map[string]idempotencyKey
	lastSweep time.Time
	now       func() time.Time
}

func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		keys:      map[string]idempotencyKey{},
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *InMemoryIdempotencyStore) live(key string, now time.Time) (idempotencyKey, bool) {
	k, ok := s.keys[key]
	if ok && !now.Before(k.expiresAt) {
		delete(s.keys, key)
		return idempotencyKey{}, false
	}
	return k, ok
}

// Reserve claims key for ttl. It fails while another request holds the key
// and after that request completed, until the ttl runs out.
func (s *InMemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}
	if _, held := s.live(key, now); held {
		return false, nil
	}
	s.keys[key] = idempotencyKey{expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *InMemoryIdempotencyStore) Complete(_ context.Context, key, resourceID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[key] = idempotencyKey{paymentID: resourceID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *InMemoryIdempotencyStore) Lookup(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, _ := s.live(key, s.now())
	return k.paymentID, nil
}

func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	return nil
}

// Close is a no-op; the store holds no goroutines or connections.
func (s *InMemoryIdempotencyStore) Close() error { return nil }

func (s *InMemoryIdempotencyStore) sweep(now time.Time) {
	for key, k := range s.keys {
		if !now.Before(k.expiresAt) {
			delete(s.keys, key)
		}
	}
	s.lastSweep = now
}

// Size counts stored keys, expired ones not yet swept included.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
