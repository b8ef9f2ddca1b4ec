package auth

import (
	"sync"
	"time"
)

// NonceStore remembers nonces for the freshness window. Entries older than
// the TTL can never pass the timestamp check again, so they are evicted by
// the sweeper and lazily on insert.
type NonceStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration

	done chan struct{}
	once sync.Once
}

func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		done: make(chan struct{}),
	}
}

// CheckAndStore records the nonce and reports whether it was unused.
// Check and insert happen under one lock so concurrent replays cannot both
// pass.
func (s *NonceStore) CheckAndStore(nonce string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seenAt, ok := s.seen[nonce]; ok && now.Sub(seenAt) <= s.ttl {
		return false
	}
	s.seen[nonce] = now
	return true
}

// Start runs background eviction until Stop is called.
func (s *NonceStore) Start() {
	go func() {
		ticker := time.NewTicker(s.ttl)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case now := <-ticker.C:
				s.evict(now)
			}
		}
	}()
}

func (s *NonceStore) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *NonceStore) evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for nonce, seenAt := range s.seen {
		if now.Sub(seenAt) > s.ttl {
			delete(s.seen, nonce)
		}
	}
}

// Len is used by tests and the eviction sweep assertions.
func (s *NonceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
