package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// eventLog is a goroutine-safe append-only list of events.
type eventLog struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (l *eventLog) record(events ...shared.DomainEvent) {
	l.mu.Lock()
	l.events = append(l.events, events...)
	l.mu.Unlock()
}

func (l *eventLog) snapshot() []shared.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

func (l *eventLog) types() []string {
	events := l.snapshot()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType()
	}
	return out
}

// MockEventHandler is a shared.EventHandler that remembers what it was given
// and fails with a configurable error.
type MockEventHandler struct {
	log        eventLog
	eventTypes []string

	mu  sync.Mutex
	err error
}

// NewMockEventHandler subscribes to eventTypes; none means every event.
func NewMockEventHandler(eventTypes ...string) *MockEventHandler {
	return &MockEventHandler{eventTypes: eventTypes}
}

func (h *MockEventHandler) EventTypes() []string { return h.eventTypes }

func (h *MockEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.log.record(event)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *MockEventHandler) Handled() []shared.DomainEvent { return h.log.snapshot() }

// HandledTypes lists the event types received, in arrival order.
func (h *MockEventHandler) HandledTypes() []string { return h.log.types() }

// SetError makes every later Handle call fail with err.
func (h *MockEventHandler) SetError(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// RecordingPublisher is a synchronous shared.EventPublisher that keeps
// everything published to it.
type RecordingPublisher struct {
	log eventLog
}

func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.log.record(events...)
	return nil
}

// Types lists the published event types in order.
func (p *RecordingPublisher) Types() []string { return p.log.types() }
