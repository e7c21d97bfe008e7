package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

type RedisNotifierOptions struct {
	Channel string
	Buffer  int
}

// redisNotifier fans events out across instances via redis pub/sub. The
// subscription is started lazily with the first watcher and torn down when
// the last one stops.
type redisNotifier[T any] struct {
	client  *redis.Client
	channel string
	buffer  int

	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan T

	active int
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

func NewRedisNotifier[T any](client *redis.Client, opts RedisNotifierOptions) (Notifier[T], error) {
	if client == nil {
		return nil, errors.New("broadcast: redis client is required")
	}

	if opts.Channel == "" {
		return nil, errors.New("broadcast: channel is required")
	}

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 1
	}

	return &redisNotifier[T]{
		client:  client,
		channel: opts.Channel,
		buffer:  buffer,
		subs:    make(map[uint64]chan T),
	}, nil
}

func (n *redisNotifier[T]) Watch() (<-chan T, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan T, n.buffer)
	n.subs[id] = ch

	n.active++
	if n.active == 1 {
		n.startLocked()
	}

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		sub, ok := n.subs[id]
		if !ok {
			return
		}

		delete(n.subs, id)
		close(sub)

		n.active--
		if n.active == 0 {
			n.stopLocked()
		}
	}
}

func (n *redisNotifier[T]) Notify(ctx context.Context, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, n.channel, payload).Err()
}

func (n *redisNotifier[T]) startLocked() {
	if n.pubsub != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel

	n.pubsub = n.client.Subscribe(ctx, n.channel)
	_, _ = n.pubsub.Receive(ctx)

	ps := n.pubsub
	go func(ps *redis.PubSub) {
		for {
			msg, err := ps.ReceiveMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, redis.ErrClosed) || ctx.Err() != nil {
					return
				}

				slog.Warn("broadcast: redis receive failed",
					"channel", n.channel,
					"error", err,
				)
				continue
			}

			var v T
			if err := json.Unmarshal([]byte(msg.Payload), &v); err != nil {
				slog.Warn("broadcast: redis decode failed",
					"channel", n.channel,
					"error", err,
				)
				continue
			}

			n.mu.Lock()
			for _, sub := range n.subs {
				select {
				case sub <- v:
				default:
				}
			}
			n.mu.Unlock()
		}
	}(ps)
}

func (n *redisNotifier[T]) stopLocked() {
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}

	if n.pubsub != nil {
		_ = n.pubsub.Close()
		n.pubsub = nil
	}
}
