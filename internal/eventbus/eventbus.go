package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"repopick/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventRepoAdded     = domain.EventRepoAdded
	EventRepoRemoved   = domain.EventRepoRemoved
	EventRepoActivated = domain.EventRepoActivated
	EventRepoSelected  = domain.EventRepoSelected
	EventScanStarted   = domain.EventScanStarted
	EventScanCompleted = domain.EventScanCompleted
	EventError         = domain.EventError
)

// Re-export domain event types
type RepoAddedEvent = domain.RepoAddedEvent
type RepoRemovedEvent = domain.RepoRemovedEvent
type RepoActivatedEvent = domain.RepoActivatedEvent
type RepoSelectedEvent = domain.RepoSelectedEvent
type ScanStartedEvent = domain.ScanStartedEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus.
//
// Publish dispatches synchronously: every handler runs to completion in the
// caller's goroutine before Publish returns. The picker relies on this: the
// outbound selected notification must land in the same dispatch turn as the
// click or activation that caused it.
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers can unsubscribe mid-dispatch
	subsCopy := make([]subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	for _, sub := range subsCopy {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
				}
			}()
			sub.handler(event)
		}()
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function; calling it more than once is harmless.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}
