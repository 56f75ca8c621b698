package state

import "maps"

// MemoryStore keeps state for the lifetime of the process. It backs tests
// and serves as the degraded mode when a durable backend cannot be opened.
type MemoryStore struct {
	states map[string]MetricState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[string]MetricState{}}
}

func (m *MemoryStore) Load() (map[string]MetricState, error) {
	return maps.Clone(m.states), nil
}

func (m *MemoryStore) Save(states map[string]MetricState) error {
	m.states = maps.Clone(states)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
