package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryNotifierDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	n := NewMemoryNotifier[TaskCreatedEvent](MemoryNotifierOptions{Buffer: 4})

	ch1, stop1 := n.Watch()
	ch2, stop2 := n.Watch()
	defer stop1()
	defer stop2()

	event := TaskCreatedEvent{
		TaskID:   "01JMTASK00000000000000000",
		TenantID: "tenant-1",
		TaskType: "call",
	}
	require.NoError(t, n.Notify(context.Background(), event))

	for _, ch := range []<-chan TaskCreatedEvent{ch1, ch2} {
		select {
		case got := <-ch:
			require.Equal(t, event, got)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestMemoryNotifierStoppedSubscriberReceivesNothing(t *testing.T) {
	t.Parallel()

	n := NewMemoryNotifier[TaskCreatedEvent](MemoryNotifierOptions{Buffer: 1})

	ch, stop := n.Watch()
	stop()

	require.NoError(t, n.Notify(context.Background(), TaskCreatedEvent{TaskID: "x"}))

	// Channel is closed on stop; no events arrive afterwards.
	_, open := <-ch
	require.False(t, open)
}

func TestMemoryNotifierDropsWhenSubscriberFull(t *testing.T) {
	t.Parallel()

	n := NewMemoryNotifier[TaskCreatedEvent](MemoryNotifierOptions{Buffer: 1})

	ch, stop := n.Watch()
	defer stop()

	// Fill the buffer, then publish again. The second publish must not
	// block and the overflow event is dropped.
	require.NoError(t, n.Notify(context.Background(), TaskCreatedEvent{TaskID: "first"}))
	require.NoError(t, n.Notify(context.Background(), TaskCreatedEvent{TaskID: "dropped"}))

	got := <-ch
	require.Equal(t, "first", got.TaskID)

	select {
	case unexpected := <-ch:
		t.Fatalf("expected drop, got %q", unexpected.TaskID)
	default:
	}
}

func TestMemoryNotifierStopIsIdempotent(t *testing.T) {
	t.Parallel()

	n := NewMemoryNotifier[TaskCreatedEvent](MemoryNotifierOptions{})

	_, stop := n.Watch()
	stop()
	stop() // second call must be a no-op
}
