package notify

import (
	"context"
	"encoding/json"
	"time"

	"offer-service/internal/domain/document"
	"offer-service/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes workflow events to a redis channel. Downstream
// delivery (email, in-app) subscribes there; this service only fires and
// forgets.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

type event struct {
	Kind        document.Kind  `json:"kind"`
	RecipientID string         `json:"recipient_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	SentAt      time.Time      `json:"sent_at"`
}

func (n *RedisNotifier) Notify(ctx context.Context, kind document.Kind, recipientID string, payload map[string]any) error {
	b, err := json.Marshal(event{
		Kind:        kind,
		RecipientID: recipientID,
		Payload:     payload,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := n.rdb.Publish(ctx, n.channel, b).Err(); err != nil {
		return err
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(kind)).Inc()
	return nil
}
