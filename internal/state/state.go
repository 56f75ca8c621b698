// Package state persists the incremental polling position of a protocol
// plugin between daemon restarts.
//
// State is a map from a metric path to the position reached on that path.
// Backends trade durability guarantees for operational simplicity; the file
// backend is the default and keeps state human-inspectable.
package state

import (
	"log/slog"
	"path"

	"protod.szuro.net/internal/logger"
)

const FILE_BACKEND = "file"
const BADGER_BACKEND = "badger"

// MetricState is the position reached on one metric path: the newest
// timestamp already consumed (unix seconds) and the rows emitted for it, so
// an unchanged upstream can be answered from cache.
type MetricState struct {
	Timestamp float64          `json:"timestamp"`
	Result    []map[string]any `json:"result"`
}

// Store persists per-target state. Implementations are safe to call from a
// single polling session at a time.
type Store interface {
	// Load returns the persisted state, or an empty map when none exists.
	Load() (map[string]MetricState, error)

	// Save replaces the persisted state with the given map.
	Save(states map[string]MetricState) error

	Close() error
}

// NewStore opens the configured backend for one polling target. A backend
// that fails to open degrades to an in-memory store so polling still works,
// it just starts from scratch on restart.
func NewStore(backend, dir, target string) Store {
	switch backend {
	case BADGER_BACKEND:
		store, err := NewBadgerStore(path.Join(dir, "badger"), target)
		if err != nil {
			logger.Error("Failed to open badger state store", slog.Any("error", err))
			return NewMemoryStore()
		}
		return store
	default:
		return NewFileStore(dir, target)
	}
}
