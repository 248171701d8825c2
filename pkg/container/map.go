// Package container provides ready-made implementations of invoke.Container.
package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"cmdwire/pkg/invoke"
)

// Map is a thread-safe in-memory container.
type Map struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMap creates an empty container.
func NewMap() *Map {
	return &Map{
		entries: make(map[string]any),
	}
}

// Set stores value under key, replacing any previous entry.
func (m *Map) Set(key string, value any) *Map {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return m
}

// Register stores value under key, returning an error if the key is taken.
func (m *Map) Register(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		return fmt.Errorf("entry %s already registered", key)
	}
	m.entries[key] = value
	return nil
}

// Provide stores value under the identifier of its dynamic type, which is
// where type-based injection looks for it.
func (m *Map) Provide(value any) *Map {
	if value == nil {
		return m
	}
	return m.Set(invoke.TypeKey(reflect.TypeOf(value)), value)
}

// ProvideAs stores value under the identifier of T.
func ProvideAs[T any](m *Map, value T) *Map {
	return m.Set(invoke.TypeKeyOf[T](), value)
}

// Get implements invoke.Container.
func (m *Map) Get(key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.entries[key]
	if !exists {
		return nil, &invoke.NotFoundError{Key: key}
	}
	return value, nil
}

// Has implements invoke.Container.
func (m *Map) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.entries[key]
	return exists
}

// Keys returns every key in sorted order.
func (m *Map) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
