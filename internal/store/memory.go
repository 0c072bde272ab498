package store

import "sync"

// MemoryStore is the default Store. Rows live for the process lifetime and
// are never evicted.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

func (s *MemoryStore) Get(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.row(id), nil
}

func (s *MemoryStore) SetNameIfAbsent(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.row(id)
	if row.DisplayName == "" {
		row.DisplayName = name
	}
	return nil
}

func (s *MemoryStore) MarkWelcomed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.row(id).Welcomed = true
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// row returns the state for id, creating the default row on first access.
// Callers must hold s.mu.
func (s *MemoryStore) row(id string) *State {
	row, ok := s.states[id]
	if !ok {
		row = &State{}
		s.states[id] = row
	}
	return row
}
