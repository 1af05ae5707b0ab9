package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"meetapp.app/api/common/logger"
)

type ConsumerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	DLQStream string
	// BatchSize bounds each XREADGROUP; Block is how long it waits for new
	// entries.
	BatchSize int64
	Block     time.Duration
	// RequeueDelay is the backoff unit: a retry after attempt n waits
	// n*RequeueDelay.
	RequeueDelay time.Duration
}

type Message struct {
	ID          string
	TaskType    TaskType
	Payload     json.RawMessage
	Attempt     int
	TraceParent string
	Raw         redis.XMessage
}

type MessageProcessor func(ctx context.Context, msg Message) error

type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
	log    *slog.Logger
}

// NewRedisConsumer creates the consumer group if missing. The group starts at
// the beginning of the stream so tasks enqueued before the first worker boot
// are still delivered.
func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.Block <= 0 {
		cfg.Block = 5 * time.Second
	}

	err := client.XGroupCreateMkStream(ctx, cfg.Stream, cfg.Group, "0").Err()
	if err != nil && !redis.HasErrorPrefix(err, "BUSYGROUP") {
		return nil, fmt.Errorf("creating consumer group %s: %w", cfg.Group, err)
	}

	return &RedisConsumer{
		client: client,
		cfg:    cfg,
		log:    slog.With("stream", cfg.Stream, "consumer", cfg.Consumer),
	}, nil
}

// Read returns new messages for this consumer. Entries that fail to parse are
// acked and dropped so they never block the group.
func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "meetapp.queue.consumer"})

	res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, ">"},
		Count:    c.cfg.BatchSize,
		Block:    c.cfg.Block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return []Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup: %w", err)
	}

	messages := make([]Message, 0, c.cfg.BatchSize)
	for _, s := range res {
		for _, raw := range s.Messages {
			msg, err := ParseMessage(raw)
			if err != nil {
				c.log.ErrorContext(ctx, "dropping malformed message", "error", err, "message_id", raw.ID)
				_ = c.Ack(ctx, Message{ID: raw.ID, Raw: raw})
				continue
			}
			messages = append(messages, msg)
		}
	}
	if len(messages) > 0 {
		c.log.DebugContext(ctx, "read batch", "count", len(messages))
	}
	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack %s: %w", msg.ID, err)
	}
	return nil
}

// Requeue waits Backoff(attempt), appends a copy carrying the next attempt
// number and then acks msg. If ctx ends during the wait, msg stays pending so
// the reclaimer can pick it up.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	attempt := max(msg.Attempt, 1)

	if delay := c.Backoff(attempt); delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	values := messageValues(msg, attempt+1)
	if errMsg != "" {
		values["last_error"] = errMsg
	}
	if err := c.add(ctx, c.cfg.Stream, values); err != nil {
		return fmt.Errorf("requeue: %w", err)
	}
	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("requeue: %w", err)
	}

	c.log.InfoContext(ctx, "message requeued", "next_attempt", attempt+1, "reason", errMsg)
	return nil
}

func (c *RedisConsumer) Backoff(attempt int) time.Duration {
	return time.Duration(attempt) * c.cfg.RequeueDelay
}

// SendDLQ parks msg on the dead-letter stream with the final error and its
// original id, then acks it.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	values := messageValues(msg, msg.Attempt)
	values["error"] = errMsg
	values["original_id"] = msg.ID
	if err := c.add(ctx, c.cfg.DLQStream, values); err != nil {
		return fmt.Errorf("dead-letter: %w", err)
	}
	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("dead-letter: %w", err)
	}

	c.log.ErrorContext(ctx, "message dead-lettered", "final_error", errMsg, "dlq_stream", c.cfg.DLQStream)
	return nil
}

func (c *RedisConsumer) add(ctx context.Context, stream string, values map[string]any) error {
	if err := c.client.XAdd(ctx, &redis.XAddArgs{Stream: stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", stream, err)
	}
	return nil
}

// ParseMessage validates a raw stream entry. task_type must be known and
// payload must be JSON; attempt defaults to 1 and traceparent is optional.
func ParseMessage(raw redis.XMessage) (Message, error) {
	f := fields(raw.Values)

	taskType, ok := f.get("task_type")
	if !ok {
		return Message{}, errors.New("missing task_type")
	}
	if !knownTaskType(TaskType(taskType)) {
		return Message{}, fmt.Errorf("unknown task_type %q", taskType)
	}

	payload, ok := f.get("payload")
	if !ok {
		return Message{}, errors.New("missing payload")
	}
	if !json.Valid([]byte(payload)) {
		return Message{}, errors.New("payload is not valid JSON")
	}

	attempt := 1
	if s, ok := f.get("attempt"); ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Message{}, fmt.Errorf("parsing attempt: %w", err)
		}
		attempt = max(n, 1)
	}

	traceParent, _ := f.get("traceparent")

	return Message{
		ID:          raw.ID,
		TaskType:    TaskType(taskType),
		Payload:     json.RawMessage(payload),
		Attempt:     attempt,
		TraceParent: traceParent,
		Raw:         raw,
	}, nil
}

func knownTaskType(t TaskType) bool {
	switch t {
	case TaskTypeNewSubscriptionMail:
		return true
	}
	return false
}

type fields map[string]any

func (f fields) get(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}

func messageValues(msg Message, attempt int) map[string]any {
	task := Task{TaskType: msg.TaskType, Payload: msg.Payload, Attempt: attempt}
	if msg.TraceParent != "" {
		task.TraceParent = &msg.TraceParent
	}
	return encodeTask(task)
}
