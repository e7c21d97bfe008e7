// Package broadcast provides best-effort fan-out of domain events to live
// subscribers on a named channel. There is no persisted outbox: a subscriber
// that is not connected at publish time never sees that event. That is
// acceptable because events here are convenience notifications; the entity
// store remains the source of truth.
package broadcast

import (
	"context"
	"time"
)

// ChannelTasks is the channel task lifecycle events are published on.
const ChannelTasks = "tasks"

// EventTaskCreated is the event name carried by TaskCreatedEvent payloads.
const EventTaskCreated = "task.created"

// TaskCreatedEvent is the payload published after a task is durably written.
type TaskCreatedEvent struct {
	TaskID        string    `json:"task_id"`
	ApplicationID string    `json:"application_id"`
	TenantID      string    `json:"tenant_id"`
	TaskType      string    `json:"task_type"`
	DueAt         time.Time `json:"due_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// Watcher is the subscribe side of a channel.
//
// Watch is reference-counted via the returned stop function; callers must
// call stop exactly once to avoid resource leaks (goroutines, redis pubsub
// connections).
type Watcher[T any] interface {
	// Watch subscribes to the channel and returns:
	//   - a channel that emits events
	//   - a stop function to unsubscribe (must be called once)
	Watch() (<-chan T, func())
}

// Notifier is a Watcher that can also publish events.
//
// Typical usage:
//   - writer side (the task coordinator): call Notify(...) after the store
//     write has committed
//   - reader side (dashboards, notification services): depend only on
//     Watcher
type Notifier[T any] interface {
	Watcher[T]

	// Notify broadcasts the value to all live subscribers. Within a single
	// publish a subscriber sees the event at most once; slow subscribers
	// may be skipped rather than block the publisher.
	Notify(ctx context.Context, v T) error
}
