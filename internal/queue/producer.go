package queue

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var ErrMissingTaskType = errors.New("task type is required")

type Producer interface {
	Enqueue(ctx context.Context, task Task) error
	Close() error
}

type ProducerConfig struct {
	Stream string
	// MaxLen caps the stream with approximate trimming. Zero keeps every entry.
	MaxLen int64
}

type RedisProducer struct {
	client *redis.Client
	cfg    ProducerConfig
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, cfg ProducerConfig, logger *slog.Logger) *RedisProducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisProducer{client: client, cfg: cfg, logger: logger.With("stream", cfg.Stream)}
}

func (p *RedisProducer) Enqueue(ctx context.Context, task Task) error {
	if task.TaskType == "" {
		return ErrMissingTaskType
	}

	args := &redis.XAddArgs{
		Stream: p.cfg.Stream,
		Values: encodeTask(task),
	}
	if p.cfg.MaxLen > 0 {
		args.MaxLen = p.cfg.MaxLen
		args.Approx = true
	}

	msgID, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "task enqueued", "task_type", task.TaskType, "message_id", msgID)
	return nil
}

func (p *RedisProducer) Close() error {
	return p.client.Close()
}

// encodeTask flattens a task into stream fields. Attempts start at 1.
func encodeTask(task Task) map[string]any {
	attempt := max(task.Attempt, 1)
	fields := map[string]any{
		"task_type": string(task.TaskType),
		"attempt":   strconv.Itoa(attempt),
		"payload":   string(task.Payload),
	}
	if task.TraceParent != nil && *task.TraceParent != "" {
		fields["traceparent"] = *task.TraceParent
	}
	return fields
}
