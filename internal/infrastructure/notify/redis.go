package notify

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/shared"
)

const channelPrefix = "crm:notify:"

// RedisNotifier implements Notifier over redis pub/sub so views backed by
// different processes converge after a write. One channel per
// module+tenant pair; subscribers pattern-match all tenants of a module.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisNotifier creates a notifier sharing an existing redis client
func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNotifier{client: client, logger: logger}
}

// Publish sends the signal on the module+tenant channel
func (n *RedisNotifier) Publish(ctx context.Context, module shared.Module, tenant uuid.UUID) {
	channel := channelPrefix + module.String() + ":" + tenant.String()
	if err := n.client.Publish(ctx, channel, tenant.String()).Err(); err != nil {
		// Best-effort delivery: a failed publish never fails the write
		n.logger.Warn("change signal publish failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

// Subscribe listens for all tenants of the module until cancelled
func (n *RedisNotifier) Subscribe(module shared.Module, h Handler) func() {
	pattern := channelPrefix + module.String() + ":*"
	pubsub := n.client.PSubscribe(context.Background(), pattern)

	go func() {
		for msg := range pubsub.Channel() {
			tenantID, err := uuid.Parse(msg.Payload)
			if err != nil {
				// Channel suffix carries the tenant as well; try that
				idx := strings.LastIndex(msg.Channel, ":")
				if idx < 0 {
					continue
				}
				tenantID, err = uuid.Parse(msg.Channel[idx+1:])
				if err != nil {
					n.logger.Warn("undecodable change signal",
						zap.String("channel", msg.Channel))
					continue
				}
			}
			h(module, tenantID)
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			n.logger.Warn("pubsub close failed", zap.Error(err))
		}
	}
}

var _ Notifier = (*RedisNotifier)(nil)
