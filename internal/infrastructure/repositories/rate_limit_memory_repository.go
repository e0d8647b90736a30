package repositories

import (
	"context"
	"sync"
	"time"
)

type memoryWindow struct {
	count     int
	expiresAt time.Time
}

// RateLimitMemoryRepository keeps fixed-window counters in process memory.
// It backs the limiter while Redis is unavailable.
type RateLimitMemoryRepository struct {
	mu        sync.Mutex
	windows   map[string]*memoryWindow
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimitMemoryRepository() *RateLimitMemoryRepository {
	return &RateLimitMemoryRepository{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// IncrementWindow increments a per-subject counter for a fixed window.
func (repo *RateLimitMemoryRepository) IncrementWindow(ctx context.Context, subject string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	now := repo.now()
	windowStart := now.Truncate(window)
	key := windowKey(keyPrefix, subject, windowStart)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if now.Sub(repo.lastSweep) >= window {
		for k, w := range repo.windows {
			if !now.Before(w.expiresAt) {
				delete(repo.windows, k)
			}
		}
		repo.lastSweep = now
	}

	w, ok := repo.windows[key]
	if !ok {
		w = &memoryWindow{expiresAt: now.Add(ttl)}
		repo.windows[key] = w
	}
	w.count++
	return w.count, windowStart, nil
}
