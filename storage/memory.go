package storage

import (
	"context"
	"sync"
)

// Memory implements Port with an in-process map. It backs tests and
// can run the whole service without a database.
type Memory struct {
	mu       sync.Mutex
	data     map[string][]byte
	failAll  error
	failKeys map[string]error
}

// NewMemory returns an empty in-memory Port.
func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string][]byte),
		failKeys: make(map[string]error),
	}
}

// FailAll makes every subsequent Save return a PersistenceError
// wrapping err. Pass nil to restore normal behavior.
func (m *Memory) FailAll(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = err
}

// FailKey makes Save fail for one key only. Pass a nil err to clear.
func (m *Memory) FailKey(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failKeys, key)
		return
	}
	m.failKeys[key] = err
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return &PersistenceError{Key: key, Err: m.failAll}
	}
	if err, ok := m.failKeys[key]; ok {
		return &PersistenceError{Key: key, Err: err}
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
