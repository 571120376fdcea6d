package connectivity

import (
	"context"
	"log"
	"sync"
	"time"
)

// Monitor holds the single online/offline signal for the agent. Transitions
// are delivered synchronously to every subscriber, so by the time SetOnline
// returns all consumers have observed the new state. No debounce: a flapping
// uplink produces a flapping signal, recovery rides on cache fallback and
// outbox replay.
type Monitor struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	listeners map[int]func(online bool)
}

func NewMonitor(initial bool) *Monitor {
	return &Monitor{
		online:    initial,
		listeners: map[int]func(bool){},
	}
}

func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline records the new state and, on a transition, notifies all
// subscribers while holding the lock so observations stay serialized.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online == online {
		return
	}
	m.online = online

	for _, listener := range m.listeners {
		listener(online)
	}
}

// Subscribe registers a transition listener and returns its unsubscribe
// function. Listeners must not call back into the monitor.
func (m *Monitor) Subscribe(listener func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = listener

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Run probes the backend on a fixed interval until ctx is cancelled,
// feeding each result into SetOnline.
func (m *Monitor) Run(ctx context.Context, probe func(ctx context.Context) bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[dinesync] connectivity monitor stopped")
			return
		case <-ticker.C:
			m.SetOnline(probe(ctx))
		}
	}
}
