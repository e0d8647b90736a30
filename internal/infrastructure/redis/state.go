package redis

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// ConnectionState records whether the Redis store is currently reachable.
// It is shared by the client hooks, the monitor and every cache consumer.
type ConnectionState struct {
	up     *atomic.Bool
	warned *atomic.Bool
	logger *logrus.Logger
}

func NewConnectionState(logger *logrus.Logger) *ConnectionState {
	return &ConnectionState{
		up:     atomic.NewBool(false),
		warned: atomic.NewBool(false),
		logger: logger,
	}
}

func (s *ConnectionState) IsConnected() bool {
	return s.up.Load()
}

// MarkUp flips the state to connected, logging only on transition.
func (s *ConnectionState) MarkUp() {
	if !s.up.Swap(true) {
		s.warned.Store(false)
		if s.logger != nil {
			s.logger.Info("Connected to Redis - caching enabled")
		}
	}
}

// MarkDown flips the state to disconnected. The warning is emitted once per outage.
func (s *ConnectionState) MarkDown(err error) {
	s.up.Store(false)
	if s.warned.Swap(true) {
		return
	}
	if s.logger != nil {
		entry := s.logger.WithField("component", "redis")
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("Redis not available - running without cache")
	}
}
