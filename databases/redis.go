package databases

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChangesChannel is the pub/sub channel carrying changed collection names
const ChangesChannel = "prosecution:changes"

// NewRedisClient creates a redis client from connection settings
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisNotifier broadcasts collection changes to every API instance sharing a backend
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier returns a notifier on the default changes channel
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, channel: ChangesChannel}
}

// Publish announces that collection changed
func (n *RedisNotifier) Publish(ctx context.Context, collection string) error {
	return n.client.Publish(ctx, n.channel, collection).Err()
}

// Listen subscribes to the channel and calls onChange for every message until ctx is done
func (n *RedisNotifier) Listen(ctx context.Context, onChange func(collection string)) error {
	ps := n.client.Subscribe(ctx, n.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return err
	}

	ch := ps.Channel()
	go func() {
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					zap.S().Warnw("redis change channel closed", "channel", n.channel)
					return
				}
				onChange(msg.Payload)
			}
		}
	}()
	return nil
}
