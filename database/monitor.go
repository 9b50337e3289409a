package database

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// StateHook is called when connectivity flips. err is nil on reconnect.
type StateHook func(connected bool, err error)

// Monitor tracks whether the database answers pings and reports transitions.
type Monitor struct {
	ping func(ctx context.Context) error
	hook StateHook

	mu        sync.RWMutex
	connected bool
}

// NewMonitor starts in the connected state; hook may be nil.
func NewMonitor(ping func(ctx context.Context) error, hook StateHook) *Monitor {
	return &Monitor{ping: ping, hook: hook, connected: true}
}

func (m *Monitor) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Check pings once and fires the hook if the state changed.
func (m *Monitor) Check(ctx context.Context) bool {
	err := m.ping(ctx)
	up := err == nil

	m.mu.Lock()
	changed := up != m.connected
	m.connected = up
	m.mu.Unlock()

	if !changed {
		return up
	}
	if up {
		log.Info().Msg("database reconnected")
	} else {
		log.Error().Err(err).Msg("database disconnected")
	}
	if m.hook != nil {
		m.hook(up, err)
	}
	return up
}
