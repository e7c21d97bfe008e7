package broadcast

import (
	"context"
	"sync"
)

type MemoryNotifierOptions struct {
	Buffer int
}

type memoryNotifier[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan T
	buffer int
}

// NewMemoryNotifier returns an in-process Notifier. Single-instance
// deployments and tests use this; anything multi-instance needs the redis
// notifier.
func NewMemoryNotifier[T any](opts MemoryNotifierOptions) Notifier[T] {
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 1
	}

	return &memoryNotifier[T]{
		subs:   make(map[uint64]chan T),
		buffer: buffer,
	}
}

func (n *memoryNotifier[T]) Watch() (<-chan T, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan T, n.buffer)
	n.subs[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		sub, ok := n.subs[id]
		if !ok {
			return
		}

		delete(n.subs, id)
		close(sub)
	}
}

func (n *memoryNotifier[T]) Notify(_ context.Context, v T) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- v:
		default:
			// Subscriber is full; drop rather than block the writer.
		}
	}

	return nil
}
