package realtime

import (
	"context"
	"sync"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
)

// Subscription is an open change channel for one table.
type Subscription interface {
	Close() error
}

// ChangeFeed delivers row-change notifications per table.
type ChangeFeed interface {
	Subscribe(ctx context.Context, table model.Table, handler func(event.Change)) (Subscription, error)
}

// handlerSet is the subscription registry shared by the feed implementations.
type handlerSet struct {
	mu       sync.Mutex
	next     uint64
	handlers map[model.Table]map[uint64]func(event.Change)
}

func (h *handlerSet) add(table model.Table, fn func(event.Change)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.handlers == nil {
		h.handlers = make(map[model.Table]map[uint64]func(event.Change))
	}
	if h.handlers[table] == nil {
		h.handlers[table] = make(map[uint64]func(event.Change))
	}
	h.next++
	id := h.next
	h.handlers[table][id] = fn
	return &subscription{close: func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.handlers[table], id)
	}}
}

func (h *handlerSet) dispatch(c event.Change) int {
	h.mu.Lock()
	fns := make([]func(event.Change), 0, len(h.handlers[c.Table]))
	for _, fn := range h.handlers[c.Table] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
	return len(fns)
}

func (h *handlerSet) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.handlers {
		n += len(m)
	}
	return n
}

type subscription struct {
	once  sync.Once
	close func()
}

func (s *subscription) Close() error {
	s.once.Do(s.close)
	return nil
}

// LocalFeed is an in-process feed. Services emit their own mutations into
// it when the database does not publish notifications.
type LocalFeed struct {
	handlers handlerSet
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{}
}

func (f *LocalFeed) Subscribe(_ context.Context, table model.Table, handler func(event.Change)) (Subscription, error) {
	return f.handlers.add(table, handler), nil
}

// Emit delivers the change to the table's subscribers.
func (f *LocalFeed) Emit(_ context.Context, c event.Change) error {
	f.handlers.dispatch(c)
	return nil
}

// Subscribers returns the number of open subscriptions.
func (f *LocalFeed) Subscribers() int {
	return f.handlers.count()
}
