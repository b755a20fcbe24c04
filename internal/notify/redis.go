package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"backend/internal/models"
)

const publishTimeout = 2 * time.Second

// RedisNotifier publishes order events to a Redis pub/sub channel the chef
// dashboard subscribes to as a refresh hint. Publishing is best-effort: a
// dropped event only delays the next dashboard poll.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

// NewRedisClient builds a client for the given address. The caller owns the
// returned client and should close it on shutdown.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (n *RedisNotifier) OrderPlaced(ctx context.Context, lines []models.OrderLine) {
	n.publish(ctx, message{Event: EventOrderPlaced, At: time.Now().UTC(), Orders: lines})
}

func (n *RedisNotifier) StatusChanged(ctx context.Context, line models.OrderLine) {
	n.publish(ctx, message{Event: EventStatusChanged, At: time.Now().UTC(), Orders: []models.OrderLine{line}})
}

func (n *RedisNotifier) publish(ctx context.Context, msg message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "notify: marshal event", "event", msg.Event, "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := n.client.Publish(pubCtx, n.channel, payload).Err(); err != nil {
		slog.WarnContext(ctx, "notify: publish failed", "event", msg.Event, "channel", n.channel, "error", err)
	}
}
