package session

import (
	"sync"
	"time"
)

// Manager serializes event processing per sender. Without it, two deliveries
// for the same number arriving in overlapping requests would race on the
// welcomed flag and could send the welcome sequence twice.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*senderLock
}

type senderLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*senderLock),
	}
}

// WithLock executes fn while holding the per-sender mutex. Events from the
// same sender are serialized; different senders run in parallel.
func (m *Manager) WithLock(id string, fn func() error) error {
	m.mu.Lock()
	sl, ok := m.locks[id]
	if !ok {
		sl = &senderLock{}
		m.locks[id] = sl
	}
	m.mu.Unlock()

	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.lastUsed = time.Now()
	return fn()
}

// Cleanup removes locks not used within maxAge. Evicting an idle lock is
// safe; conversation state itself is never evicted.
func (m *Manager) Cleanup(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, sl := range m.locks {
		if now.Sub(sl.lastUsed) > maxAge {
			delete(m.locks, id)
		}
	}
}
