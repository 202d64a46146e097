package replication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sales/backend/internal/domain/shared"
)

func TestNewMessage(t *testing.T) {
	t.Run("wraps payload with source and process", func(t *testing.T) {
		msg, err := NewMessage(ProcessMovementDelete, map[string]string{"id": "abc"})
		require.NoError(t, err)

		assert.Equal(t, "api-sales", msg.Source)
		assert.Equal(t, "movementDelete", msg.Process)
		assert.JSONEq(t, `{"id":"abc"}`, msg.JSONData)
	})

	t.Run("payload round-trips through the envelope", func(t *testing.T) {
		type payload struct {
			Qty string `json:"qty"`
		}
		msg, err := NewMessage(ProcessMovementUpdate, payload{Qty: "2.5"})
		require.NoError(t, err)

		var decoded payload
		require.NoError(t, msg.DecodePayload(&decoded))
		assert.Equal(t, "2.5", decoded.Qty)
	})
}

// fakeStreamAdder records XAdd calls and fails the first n of them
type fakeStreamAdder struct {
	failures int
	calls    int
	lastArgs *redis.XAddArgs
}

func (f *fakeStreamAdder) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.calls++
	f.lastArgs = a
	if f.calls <= f.failures {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	return redis.NewStringResult("1700000000000-0", nil)
}

func TestRedisQueueProducer_Send(t *testing.T) {
	logger := zap.NewNop()

	t.Run("publishes envelope fields to the stream", func(t *testing.T) {
		adder := &fakeStreamAdder{}
		producer := newRedisQueueProducer(adder, "replication:products", 3, time.Millisecond, logger)

		msg, err := NewMessage(ProcessMovementUpdate, []string{})
		require.NoError(t, err)

		id, err := producer.Send(context.Background(), msg)

		require.NoError(t, err)
		assert.Equal(t, "1700000000000-0", id)
		assert.Equal(t, 1, adder.calls)
		assert.Equal(t, "replication:products", adder.lastArgs.Stream)
		assert.Equal(t, "api-sales", adder.lastArgs.Values.(map[string]interface{})["source"])
		assert.Equal(t, "movementUpdate", adder.lastArgs.Values.(map[string]interface{})["process"])
	})

	t.Run("retries transient failures with backoff", func(t *testing.T) {
		adder := &fakeStreamAdder{failures: 2}
		producer := newRedisQueueProducer(adder, "replication:products", 3, time.Millisecond, logger)

		id, err := producer.Send(context.Background(), Message{Source: Source, Process: ProcessMovementUpdate})

		require.NoError(t, err)
		assert.Equal(t, "1700000000000-0", id)
		assert.Equal(t, 3, adder.calls)
	})

	t.Run("reports transport failure when retries are exhausted", func(t *testing.T) {
		adder := &fakeStreamAdder{failures: 10}
		producer := newRedisQueueProducer(adder, "replication:products", 3, time.Millisecond, logger)

		_, err := producer.Send(context.Background(), Message{Source: Source, Process: ProcessMovementUpdate})

		assert.ErrorIs(t, err, shared.ErrTransport)
		assert.Equal(t, 3, adder.calls)
	})

	t.Run("stops retrying when the context is cancelled", func(t *testing.T) {
		adder := &fakeStreamAdder{failures: 10}
		producer := newRedisQueueProducer(adder, "replication:products", 5, time.Minute, logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := producer.Send(ctx, Message{Source: Source, Process: ProcessMovementUpdate})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, adder.calls)
	})
}

// fakeConsumer implements streamConsumer for worker tests
type fakeConsumer struct {
	acked   []string
	pending []redis.XMessage
}

func (f *fakeConsumer) XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeConsumer) XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	return redis.NewXStreamSliceCmdResult(nil, redis.Nil)
}

func (f *fakeConsumer) XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd {
	f.acked = append(f.acked, ids...)
	return redis.NewIntResult(int64(len(ids)), nil)
}

func (f *fakeConsumer) XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd {
	claimed := f.pending
	f.pending = nil
	cmd := redis.NewXAutoClaimCmd(ctx)
	cmd.SetVal(claimed, "0-0")
	return cmd
}

// recordingHandler captures handled messages and can be told to fail
type recordingHandler struct {
	messages []Message
	err      error
}

func (h *recordingHandler) Handle(ctx context.Context, msg Message) error {
	h.messages = append(h.messages, msg)
	return h.err
}

func TestReceptionWorker_Process(t *testing.T) {
	logger := zap.NewNop()

	entry := redis.XMessage{
		ID: "1700000000000-0",
		Values: map[string]interface{}{
			"source":   "api-admin",
			"process":  ProcessCompanyUpdate,
			"jsonData": `{"id":"abc","name":"ACME"}`,
		},
	}

	t.Run("acknowledges handled messages", func(t *testing.T) {
		consumer := &fakeConsumer{}
		handler := &recordingHandler{}
		worker := newReceptionWorker(consumer, "reception:sales", "sales-backend", "worker-1", handler, logger)

		worker.process(context.Background(), entry)

		require.Len(t, handler.messages, 1)
		assert.Equal(t, ProcessCompanyUpdate, handler.messages[0].Process)
		assert.Equal(t, []string{"1700000000000-0"}, consumer.acked)
	})

	t.Run("leaves failed messages pending", func(t *testing.T) {
		consumer := &fakeConsumer{}
		handler := &recordingHandler{err: errors.New("apply failed")}
		worker := newReceptionWorker(consumer, "reception:sales", "sales-backend", "worker-1", handler, logger)

		worker.process(context.Background(), entry)

		assert.Len(t, handler.messages, 1)
		assert.Empty(t, consumer.acked)
	})

	t.Run("reclaims stranded pending messages", func(t *testing.T) {
		consumer := &fakeConsumer{pending: []redis.XMessage{entry}}
		handler := &recordingHandler{}
		worker := newReceptionWorker(consumer, "reception:sales", "sales-backend", "worker-2", handler, logger)

		require.NoError(t, worker.reclaimPending(context.Background()))

		require.Len(t, handler.messages, 1)
		assert.Equal(t, []string{entry.ID}, consumer.acked)
	})
}

func TestMessageFromValues(t *testing.T) {
	t.Run("ignores missing or non-string values", func(t *testing.T) {
		msg := messageFromValues(map[string]interface{}{
			"process": ProcessUserDelete,
			"source":  42,
		})
		assert.Equal(t, ProcessUserDelete, msg.Process)
		assert.Empty(t, msg.Source)
		assert.Empty(t, msg.JSONData)
	})
}
