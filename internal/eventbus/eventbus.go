package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"partsearch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventQueryIssued       = domain.EventQueryIssued
	EventCategoryFailed    = domain.EventCategoryFailed
	EventComponentSelected = domain.EventComponentSelected
	EventOverlayOpened     = domain.EventOverlayOpened
	EventOverlayClosed     = domain.EventOverlayClosed
)

// Re-export domain event types
type QueryIssuedEvent = domain.QueryIssuedEvent
type CategoryFailedEvent = domain.CategoryFailedEvent
type ComponentSelectedEvent = domain.ComponentSelectedEvent
type OverlayOpenedEvent = domain.OverlayOpenedEvent
type OverlayClosedEvent = domain.OverlayClosedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the concrete implementation of EventBus
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	inflight  sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// New creates a new event bus and starts its dispatcher
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    logger,
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers.
// Events are dropped when the queue is full or the bus is closed.
func (b *Bus) Publish(event DomainEvent) {
	b.logger.Debug("eventbus_publish", slog.String("event", string(event.Type())))

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("eventbus_full", slog.String("event", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops accepting events, delivers the ones already queued and
// waits for running handlers.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.inflight.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Deliver whatever was queued before Close
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers run without holding the lock
	handlers := make([]EventHandler, len(subs))
	for i, s := range subs {
		handlers[i] = s.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h EventHandler, eventType EventType) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("eventbus_handler_panic",
						slog.String("event", string(eventType)),
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())))
				}
			}()
			h(event)
		}(handler, event.Type())
	}
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}
