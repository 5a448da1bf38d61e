package publisher

import (
	"context"
	"fmt"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// streamMaxLen bounds the stream; XADD trims approximately.
const streamMaxLen = 100000

// RedisStreamPublisher appends events to a Redis stream with XADD.
type RedisStreamPublisher struct {
	client redis.Cmdable
	stream string
}

var _ portssvc.EventPublisher = (*RedisStreamPublisher)(nil)

func NewRedisStreamPublisher(client redis.Cmdable, stream string) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, stream: stream}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, event domain.DonationEvent) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"event_id":    event.EventID,
			"type":        event.Type,
			"donation_id": event.DonationID,
			"payload":     payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("redis xadd to %s: %w", p.stream, err)
	}
	return nil
}
