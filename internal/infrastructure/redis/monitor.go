package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Pinger is the subset of the redis client the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type MonitorConfig struct {
	HealthInterval time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	PingTimeout    time.Duration
}

// Monitor keeps ConnectionState in sync with the server: it connects in the
// background, re-checks a live connection periodically and reconnects with
// capped exponential backoff after a failure.
type Monitor struct {
	client Pinger
	state  *ConnectionState
	cfg    MonitorConfig
	logger *logrus.Logger
}

func NewMonitor(client Pinger, state *ConnectionState, cfg MonitorConfig, logger *logrus.Logger) *Monitor {
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = 5 * time.Second
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 2 * time.Second
	}
	return &Monitor{client: client, state: state, cfg: cfg, logger: logger}
}

// Run blocks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	backoff := m.cfg.InitialBackoff
	for {
		var wait time.Duration
		if err := m.ping(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			m.state.MarkDown(err)
			if m.logger != nil {
				m.logger.WithError(err).WithField("retry_in", backoff.String()).Debug("redis ping failed")
			}
			wait = backoff
			backoff *= 2
			if backoff > m.cfg.MaxBackoff {
				backoff = m.cfg.MaxBackoff
			}
		} else {
			m.state.MarkUp()
			backoff = m.cfg.InitialBackoff
			wait = m.cfg.HealthInterval
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (m *Monitor) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.PingTimeout)
	defer cancel()
	return m.client.Ping(ctx).Err()
}
