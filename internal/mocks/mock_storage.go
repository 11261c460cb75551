package mocks

import (
	"context"
	"sync"

	"github.com/SeimoDev/LightShop/domain"
)

// MockStorage implements domain.Storage in memory, with optional overrides
// for failure injection.
type MockStorage struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string) error
	DeleteFunc func(ctx context.Context, key string) error

	mu   sync.Mutex
	Data map[string]string
}

// NewMockStorage creates an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{Data: make(map[string]string)}
}

// Seed pre-populates a key, for rehydration tests.
func (m *MockStorage) Seed(key, value string) *MockStorage {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return m
}

// Get implements domain.Storage.
func (m *MockStorage) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

// Set implements domain.Storage.
func (m *MockStorage) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return nil
}

// Delete implements domain.Storage.
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

// Contains reports whether a key is currently stored.
func (m *MockStorage) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Data[key]
	return ok
}
