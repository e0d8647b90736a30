package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
)

// RateLimitPolicy is a fixed window budget for one tier.
type RateLimitPolicy struct {
	Max    int
	Window time.Duration
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	Policies  map[string]RateLimitPolicy
	KeyPrefix string
}

// RateLimiterService implements ports.RateLimiterService with per-tier fixed windows.
// Counting goes to the primary store and falls back to the secondary when it errors.
type RateLimiterService struct {
	primary   ports.RateLimitRepository
	fallback  ports.RateLimitRepository
	policies  map[string]RateLimitPolicy
	keyPrefix string
	logger    *logrus.Logger
}

// ErrNoRateLimitStore is returned when neither counter store is configured.
var ErrNoRateLimitStore = errors.New("rate limiter: no counter store configured")

var defaultPolicy = RateLimitPolicy{Max: 100, Window: 15 * time.Minute}

func NewRateLimiterService(primary, fallback ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	kp := "ratelimit"
	policies := map[string]RateLimitPolicy{}
	if cfg != nil {
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
		for tier, p := range cfg.Policies {
			if p.Max <= 0 {
				p.Max = defaultPolicy.Max
			}
			if p.Window <= 0 {
				p.Window = defaultPolicy.Window
			}
			policies[tier] = p
		}
	}
	return &RateLimiterService{primary: primary, fallback: fallback, policies: policies, keyPrefix: kp, logger: logger}
}

func (s *RateLimiterService) policy(tier string) RateLimitPolicy {
	if p, ok := s.policies[tier]; ok {
		return p
	}
	return defaultPolicy
}

func (s *RateLimiterService) Allow(ctx context.Context, tier, client string) (bool, int, int, time.Time, error) {
	p := s.policy(tier)
	subject := tier + ":" + client
	ttl := p.Window * 2 // retain overlap window

	count, windowStart, err := s.increment(ctx, subject, p.Window, ttl)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"tier": tier, "client": client}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, p.Max, p.Max, time.Now().Truncate(p.Window).Add(p.Window), err
	}
	reset := windowStart.Add(p.Window)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tier": tier, "client": client, "count": count, "limit": p.Max}).Debug("rate limiter window state")
	}
	if count > p.Max {
		return false, 0, p.Max, reset, nil
	}
	return true, p.Max - count, p.Max, reset, nil
}

func (s *RateLimiterService) increment(ctx context.Context, subject string, window, ttl time.Duration) (int, time.Time, error) {
	if s.primary != nil {
		count, start, err := s.primary.IncrementWindow(ctx, subject, window, s.keyPrefix, ttl)
		if err == nil || s.fallback == nil {
			return count, start, err
		}
		if s.logger != nil {
			s.logger.WithError(err).Debug("rate limiter: primary store unavailable, using fallback")
		}
	}
	if s.fallback == nil {
		return 0, time.Time{}, ErrNoRateLimitStore
	}
	return s.fallback.IncrementWindow(ctx, subject, window, s.keyPrefix, ttl)
}
