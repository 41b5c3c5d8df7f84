package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is used when a category has no rate of its own.
const DefaultCategory = "default"

// Store manages rate limiters for multiple clients.
// Limiters are keyed by category and client so a client exhausting the
// login budget keeps its registration budget.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	mu       sync.RWMutex

	// idleTTL is how long an unused limiter is kept
	idleTTL time.Duration
}

// NewStore creates a new store for managing rate limiters.
func NewStore(defaultRate Rate, idleTTL time.Duration) *Store {
	return &Store{
		limiters: make(map[string]*Limiter),
		rates:    map[string]Rate{DefaultCategory: defaultRate},
		idleTTL:  idleTTL,
	}
}

// SetRate sets a rate limit for a specific category.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// GetLimiter returns the limiter for clientID in category, creating it on first use.
func (s *Store) GetLimiter(clientID, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	r, ok := s.rates[category]
	if !ok {
		r = s.rates[DefaultCategory]
	}
	limiter = NewLimiter(r)
	s.limiters[key] = limiter
	return limiter
}

// Allow is shorthand for GetLimiter(clientID, category).Allow().
func (s *Store) Allow(clientID, category string) bool {
	return s.GetLimiter(clientID, category).Allow()
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Run removes idle limiters every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.cleanup(now)
		}
	}
}

// cleanup removes limiters that have been inactive for longer than idleTTL.
func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince(now) > s.idleTTL {
			delete(s.limiters, key)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(s.limiters)).Msg("Rate limiter cleanup")
	}
}
