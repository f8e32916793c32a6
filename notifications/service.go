// Package notifications fans change events out to the currently connected
// SSE subscribers. There is no buffering for late joiners and no replay: a
// subscriber sees only events broadcast while it is registered.
package notifications

import (
	"sync"
)

// Topic is the coarse category a filesystem change is classified into.
type Topic string

const (
	TopicPlans    Topic = "plans"
	TopicTasks    Topic = "tasks"
	TopicTodos    Topic = "todos"
	TopicStats    Topic = "stats"
	TopicSessions Topic = "sessions"
	TopicMemory   Topic = "memory"

	// TopicConnected is the handshake message a stream sends on connect.
	TopicConnected Topic = "connected"
)

// Event is one change notification. Ephemeral: broadcast once, never stored.
type Event struct {
	Type Topic  `json:"type"`
	Path string `json:"path,omitempty"`
}

// Service manages SSE subscriptions and event broadcasting
type Service struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewService creates a new notification service
func NewService() *Service {
	return &Service{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel plus an
// unsubscribe function. Unsubscribe is safe to call more than once and safe
// to race with Shutdown.
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// Only close if the channel is still registered
		if _, exists := s.subscribers[ch]; exists {
			delete(s.subscribers, ch)
			close(ch)
		}
	}

	return ch, unsubscribe
}

// Notify broadcasts an event to all current subscribers. Delivery is
// fire-and-forget: a subscriber whose channel is full is skipped so a slow
// consumer never blocks the watcher or the other subscribers.
func (s *Service) Notify(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Shutdown closes every subscriber channel and empties the registry.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan Event]struct{})
}

// SubscriberCount returns the number of active subscribers
func (s *Service) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
