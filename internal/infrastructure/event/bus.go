package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Publish between Stop and the next Start.
var ErrBusStopped = errors.New("event bus stopped")

// InMemoryEventBus delivers committed invoice events to in-process handlers
// on the publishing goroutine. A failing or panicking handler is logged and
// skipped; it never fails the request that published.
type InMemoryEventBus struct {
	log *zap.Logger

	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	catchAll []shared.EventHandler
	stopped  bool
}

func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &InMemoryEventBus{
		log:    log.Named("events"),
		byType: map[string][]shared.EventHandler{},
	}
}

// Subscribe registers h for the types it reports from EventTypes, or for
// every event when it reports none. Subscribing twice is a no-op.
func (b *InMemoryEventBus) Subscribe(h shared.EventHandler) {
	types := h.EventTypes()

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(types) == 0 {
		if !slices.Contains(b.catchAll, h) {
			b.catchAll = append(b.catchAll, h)
		}
		return
	}
	for _, t := range types {
		if !slices.Contains(b.byType[t], h) {
			b.byType[t] = append(b.byType[t], h)
		}
	}
}

// handlersFor returns the typed handlers for eventType then the catch-all
// ones, each in subscription order.
func (b *InMemoryEventBus) handlersFor(eventType string) ([]shared.EventHandler, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.stopped {
		return nil, false
	}
	out := slices.Clone(b.byType[eventType])
	for _, h := range b.catchAll {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out, true
}

func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		handlers, open := b.handlersFor(e.EventType())
		if !open {
			return ErrBusStopped
		}
		b.log.Debug("publishing event",
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.Int("handlers", len(handlers)),
		)
		for _, h := range handlers {
			if err := deliver(ctx, h, e); err != nil {
				b.log.Error("handler failed to process event",
					zap.String("event_type", e.EventType()),
					zap.String("event_id", e.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

func deliver(ctx context.Context, h shared.EventHandler, e shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, e)
}

func (b *InMemoryEventBus) Start(context.Context) error {
	b.mu.Lock()
	b.stopped = false
	n := len(b.catchAll)
	for _, hs := range b.byType {
		n += len(hs)
	}
	b.mu.Unlock()

	b.log.Info("event bus started", zap.Int("subscriptions", n))
	return nil
}

func (b *InMemoryEventBus) Stop(context.Context) error {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()

	b.log.Info("event bus stopped")
	return nil
}

var _ shared.EventPublisher = (*InMemoryEventBus)(nil)
