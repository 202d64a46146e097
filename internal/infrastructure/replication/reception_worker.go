package replication

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler applies an inbound replication message to local state
type Handler interface {
	Handle(ctx context.Context, msg Message) error
}

// streamConsumer is the slice of the Redis client the worker needs
type streamConsumer interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd
}

// reclaimMinIdle is how long a message may sit pending on a dead consumer
// before another instance takes it over.
const reclaimMinIdle = time.Minute

// ReceptionWorker consumes masterdata replication messages from a Redis
// stream through a consumer group. Messages are acknowledged only after the
// handler succeeds; failed messages stay pending and are redelivered.
type ReceptionWorker struct {
	client   streamConsumer
	stream   string
	group    string
	consumer string
	handler  Handler
	logger   *zap.Logger
}

// NewReceptionWorker creates a worker for the given stream and group
func NewReceptionWorker(client *redis.Client, stream, group, consumer string, handler Handler, logger *zap.Logger) *ReceptionWorker {
	return newReceptionWorker(client, stream, group, consumer, handler, logger)
}

func newReceptionWorker(client streamConsumer, stream, group, consumer string, handler Handler, logger *zap.Logger) *ReceptionWorker {
	return &ReceptionWorker{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

// Start runs the consume loop until the context is cancelled
func (w *ReceptionWorker) Start(ctx context.Context) error {
	if err := w.ensureGroup(ctx); err != nil {
		return err
	}

	w.logger.Info("reception worker started",
		zap.String("stream", w.stream),
		zap.String("group", w.group),
		zap.String("consumer", w.consumer),
	)

	for {
		if err := w.reclaimPending(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Warn("reception reclaim failed", zap.Error(err))
		}
		if err := w.consumeBatch(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.logger.Info("reception worker stopped")
				return nil
			}
			w.logger.Error("reception read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
		}
	}
}

// ensureGroup creates the consumer group if it does not exist yet
func (w *ReceptionWorker) ensureGroup(ctx context.Context) error {
	err := w.client.XGroupCreateMkStream(ctx, w.stream, w.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// reclaimPending takes over messages another consumer read but never
// acknowledged, so a crashed instance does not strand them.
func (w *ReceptionWorker) reclaimPending(ctx context.Context) error {
	entries, _, err := w.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   w.stream,
		Group:    w.group,
		Consumer: w.consumer,
		MinIdle:  reclaimMinIdle,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		w.process(ctx, entry)
	}
	return nil
}

// consumeBatch reads and processes one batch of messages
func (w *ReceptionWorker) consumeBatch(ctx context.Context) error {
	streams, err := w.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    w.group,
		Consumer: w.consumer,
		Streams:  []string{w.stream, ">"},
		Count:    10,
		Block:    5 * time.Second,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	for _, stream := range streams {
		for _, entry := range stream.Messages {
			w.process(ctx, entry)
		}
	}
	return nil
}

// process applies a single stream entry and acknowledges it on success
func (w *ReceptionWorker) process(ctx context.Context, entry redis.XMessage) {
	msg := messageFromValues(entry.Values)

	if err := w.handler.Handle(ctx, msg); err != nil {
		w.logger.Error("reception message failed",
			zap.String("id", entry.ID),
			zap.String("process", msg.Process),
			zap.Error(err),
		)
		return
	}

	if err := w.client.XAck(ctx, w.stream, w.group, entry.ID).Err(); err != nil {
		w.logger.Error("reception ack failed",
			zap.String("id", entry.ID),
			zap.Error(err),
		)
		return
	}

	w.logger.Info("reception message applied",
		zap.String("id", entry.ID),
		zap.String("process", msg.Process),
	)
}

// messageFromValues rebuilds the envelope from stream entry values
func messageFromValues(values map[string]interface{}) Message {
	str := func(key string) string {
		if v, ok := values[key].(string); ok {
			return v
		}
		return ""
	}
	return Message{
		Source:   str("source"),
		Process:  str("process"),
		JSONData: str("jsonData"),
	}
}
