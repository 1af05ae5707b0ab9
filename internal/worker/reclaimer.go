package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/queue"
)

type RedisReclaimerConfig struct {
	Stream   string
	Group    string
	Consumer string
	// MinIdle is how long a message must sit unacked before another
	// consumer may take it over.
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// FailureHandler decides what happens to a reclaimed message whose
// processing failed again.
type FailureHandler func(ctx context.Context, msg queue.Message, err error)

// RedisReclaimer takes over messages left pending by a worker that died
// between reading and acking them, and runs them through the processor.
type RedisReclaimer struct {
	client    *redis.Client
	cfg       RedisReclaimerConfig
	consumer  Consumer
	process   queue.MessageProcessor
	onFailure FailureHandler

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewRedisReclaimer(client *redis.Client, cfg RedisReclaimerConfig, consumer Consumer, process queue.MessageProcessor, onFailure FailureHandler) *RedisReclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &RedisReclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		process:   process,
		onFailure: onFailure,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run sweeps every Interval until ctx ends or Stop is called.
func (r *RedisReclaimer) Run(ctx context.Context) {
	defer close(r.done)
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "meetapp.worker.reclaimer"})
	log := slog.With("stream", r.cfg.Stream, "group", r.cfg.Group)
	log.InfoContext(ctx, "reclaimer started", "interval", r.cfg.Interval, "min_idle", r.cfg.MinIdle)

	tick := time.NewTicker(r.cfg.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			log.InfoContext(ctx, "reclaimer stopped")
			return
		case <-tick.C:
			n, err := r.ReclaimOnce(ctx)
			if err != nil {
				log.ErrorContext(ctx, "reclaim sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.InfoContext(ctx, "reclaim sweep finished", "claimed", n)
			}
		}
	}
}

// Stop ends Run and waits for the current sweep to finish. Safe to call more
// than once.
func (r *RedisReclaimer) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

// ReclaimOnce walks the pending entries list with XAUTOCLAIM, taking over
// every message idle for at least MinIdle. It returns the number claimed.
func (r *RedisReclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	claimed := 0
	cursor := "0-0"
	for {
		messages, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("xautoclaim: %w", err)
		}

		for _, raw := range messages {
			r.handle(ctx, raw)
			claimed++
		}

		if next == "" || next == "0-0" || len(messages) == 0 {
			return claimed, nil
		}
		cursor = next
	}
}

func (r *RedisReclaimer) handle(ctx context.Context, raw redis.XMessage) {
	msgID := raw.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	msg, err := queue.ParseMessage(raw)
	if err != nil {
		// Unparseable entries would be claimed forever.
		slog.ErrorContext(ctx, "dropping unparseable reclaimed message", "error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: raw.ID, Raw: raw})
		return
	}

	taskType := string(msg.TaskType)
	ctx = logger.WithLogFields(ctx, logger.LogFields{TaskType: &taskType})
	slog.InfoContext(ctx, "reprocessing reclaimed message", "attempt", msg.Attempt)

	if err := r.process(ctx, msg); err != nil {
		slog.WarnContext(ctx, "reclaimed message failed again", "error", err)
		if r.onFailure != nil {
			r.onFailure(ctx, msg, err)
		}
	}
}
