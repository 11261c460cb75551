package mocks

import (
	"sync"

	"github.com/SeimoDev/LightShop/domain"
)

// NotifierCall records one notification delivered to the mock.
type NotifierCall struct {
	Type    domain.ToastType
	Message string
}

// MockNotifier implements domain.Notifier and records every message.
type MockNotifier struct {
	mu     sync.Mutex
	nextID int64
	Calls  []NotifierCall
}

// NewMockNotifier creates an empty recorder.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) record(typ domain.ToastType, message string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.Calls = append(m.Calls, NotifierCall{Type: typ, Message: message})
	return m.nextID
}

// Success implements domain.Notifier.
func (m *MockNotifier) Success(message string) int64 {
	return m.record(domain.ToastSuccess, message)
}

// Error implements domain.Notifier.
func (m *MockNotifier) Error(message string) int64 {
	return m.record(domain.ToastError, message)
}

// Warning implements domain.Notifier.
func (m *MockNotifier) Warning(message string) int64 {
	return m.record(domain.ToastWarning, message)
}

// Info implements domain.Notifier.
func (m *MockNotifier) Info(message string) int64 {
	return m.record(domain.ToastInfo, message)
}

// Messages returns just the message texts in delivery order.
func (m *MockNotifier) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Message
	}
	return out
}
