package broadcast

import "github.com/redis/go-redis/v9"

const (
	ModeMemory = "memory"
	ModeRedis  = "redis"
)

// Config selects the fan-out backend. Memory is fine for a single instance;
// redis is required once the dashboard and the API run separately.
type Config struct {
	Mode      string
	RedisAddr string
	Buffer    int
}

// NewNotifierFromConfig builds a Notifier for the configured mode.
func NewNotifierFromConfig[T any](cfg Config, channel string) (Notifier[T], error) {
	switch cfg.Mode {
	case ModeRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return NewRedisNotifier[T](client, RedisNotifierOptions{
			Channel: channel,
			Buffer:  cfg.Buffer,
		})
	default:
		return NewMemoryNotifier[T](MemoryNotifierOptions{Buffer: cfg.Buffer}), nil
	}
}
