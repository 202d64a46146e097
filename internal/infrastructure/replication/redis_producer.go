package replication

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sales/backend/internal/domain/shared"
)

// streamAdder is the slice of the Redis client the producer needs
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisQueueProducer publishes replication messages to a Redis stream.
// Transient failures are retried with exponential backoff; when the attempts
// are exhausted the caller gets a TRANSPORT error and must compensate.
type RedisQueueProducer struct {
	client         streamAdder
	stream         string
	maxAttempts    int
	initialBackoff time.Duration
	logger         *zap.Logger
}

// NewRedisQueueProducer creates a producer for the given stream
func NewRedisQueueProducer(client *redis.Client, stream string, maxAttempts int, initialBackoff time.Duration, logger *zap.Logger) *RedisQueueProducer {
	return newRedisQueueProducer(client, stream, maxAttempts, initialBackoff, logger)
}

func newRedisQueueProducer(client streamAdder, stream string, maxAttempts int, initialBackoff time.Duration, logger *zap.Logger) *RedisQueueProducer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RedisQueueProducer{
		client:         client,
		stream:         stream,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		logger:         logger,
	}
}

// Send appends the message to the stream and returns the entry id
func (p *RedisQueueProducer) Send(ctx context.Context, msg Message) (string, error) {
	backoff := p.initialBackoff
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		id, err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]interface{}{
				"source":   msg.Source,
				"process":  msg.Process,
				"jsonData": msg.JSONData,
			},
		}).Result()
		if err == nil {
			return id, nil
		}
		lastErr = err

		p.logger.Warn("stream publish failed",
			zap.String("stream", p.stream),
			zap.String("process", msg.Process),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	p.logger.Error("stream publish exhausted retries",
		zap.String("stream", p.stream),
		zap.String("process", msg.Process),
		zap.Error(lastErr),
	)
	return "", shared.ErrTransport
}

// Ensure RedisQueueProducer implements Gateway
var _ Gateway = (*RedisQueueProducer)(nil)
