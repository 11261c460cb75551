// Package stores holds the stateful client containers: session, cart and
// toast queue. Each is an explicitly constructed value passed by reference,
// never a package-level singleton.
package stores

import (
	"sync"
	"time"

	"github.com/SeimoDev/LightShop/domain"
)

// DefaultToastDuration is applied by the convenience wrappers.
const DefaultToastDuration = 3000 * time.Millisecond

// ToastStore owns the ordered queue of transient user-facing messages.
// Insertion order is display order; ids are unique for the process lifetime.
type ToastStore struct {
	mu       sync.Mutex
	nextID   int64
	messages []domain.Toast
	timers   map[int64]*time.Timer
}

// NewToastStore creates an empty toast queue.
func NewToastStore() *ToastStore {
	return &ToastStore{timers: make(map[int64]*time.Timer)}
}

// Add appends a message and returns its id. A positive duration schedules
// automatic removal once it elapses; zero or negative keeps the message
// until Remove is called.
func (s *ToastStore) Add(message string, typ domain.ToastType, duration time.Duration) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.messages = append(s.messages, domain.Toast{
		ID:         id,
		Message:    message,
		Type:       typ,
		DurationMS: int(duration / time.Millisecond),
	})

	if duration > 0 {
		s.timers[id] = time.AfterFunc(duration, func() { s.Remove(id) })
	}
	return id
}

// Remove deletes the message with the given id. Unknown or already-expired
// ids are a harmless no-op.
func (s *ToastStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	for i, m := range s.messages {
		if m.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

// Messages returns a snapshot of the live queue in display order.
func (s *ToastStore) Messages() []domain.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Toast, len(s.messages))
	copy(out, s.messages)
	return out
}

// Contains reports whether a message with the given id is still live.
func (s *ToastStore) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Success implements domain.Notifier.
func (s *ToastStore) Success(message string) int64 {
	return s.Add(message, domain.ToastSuccess, DefaultToastDuration)
}

// Error implements domain.Notifier.
func (s *ToastStore) Error(message string) int64 {
	return s.Add(message, domain.ToastError, DefaultToastDuration)
}

// Warning implements domain.Notifier.
func (s *ToastStore) Warning(message string) int64 {
	return s.Add(message, domain.ToastWarning, DefaultToastDuration)
}

// Info implements domain.Notifier.
func (s *ToastStore) Info(message string) int64 {
	return s.Add(message, domain.ToastInfo, DefaultToastDuration)
}
