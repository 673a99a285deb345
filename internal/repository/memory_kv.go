package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/techstore-cart/internal/port"
)

// memoryKV keeps entries for the lifetime of the process, the way browser
// local storage keeps them for the lifetime of the profile.
type memoryKV struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemory() port.KeyValueStore {
	return &memoryKV{
		entries: make(map[string]string),
	}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, found := m.entries[key]
	return value, found, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

func (m *memoryKV) Update(_ context.Context, key string, fn func(string, bool) (string, error)) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := m.entries[key]
	next, err := fn(current, found)
	if err != nil {
		return err
	}

	m.entries[key] = next
	return nil
}
