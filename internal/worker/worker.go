package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"meetapp.app/api/common/logger"
	"meetapp.app/api/internal/queue"
)

// ErrPermanent marks failures that retrying cannot fix. Such messages go
// straight to the dead letter stream.
var ErrPermanent = errors.New("permanent failure")

const readErrorPause = time.Second

type Config struct {
	// MaxAttempts is how many deliveries a message gets before it is
	// dead-lettered.
	MaxAttempts int
}

// Worker pulls batches from the consumer and dispatches each message to the
// handler registered for its task type. Messages in a batch run in order.
type Worker struct {
	consumer Consumer
	handlers map[queue.TaskType]Handler
	cfg      Config

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	done    chan struct{}
}

func New(consumer Consumer, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Worker{
		consumer: consumer,
		handlers: make(map[queue.TaskType]Handler),
		cfg:      cfg,
		done:     make(chan struct{}),
	}
}

// Register binds h to taskType. It must be called before Run.
func (w *Worker) Register(taskType queue.TaskType, h Handler) {
	w.handlers[taskType] = h
}

// Run consumes until Stop is called, which returns nil, or until ctx ends,
// which returns ctx.Err().
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.done)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.mu.Lock()
	w.cancel = cancel
	if w.stopped {
		cancel()
	}
	w.mu.Unlock()

	runCtx = logger.WithLogFields(runCtx, logger.LogFields{Component: "meetapp.worker"})
	slog.InfoContext(runCtx, "worker started", "task_types", len(w.handlers), "max_attempts", w.cfg.MaxAttempts)

	for runCtx.Err() == nil {
		messages, err := w.consumer.Read(runCtx)
		if err != nil {
			if runCtx.Err() != nil {
				break
			}
			slog.ErrorContext(runCtx, "reading batch failed", "error", err)
			sleep(runCtx, readErrorPause)
			continue
		}
		for _, msg := range messages {
			msgCtx := messageContext(runCtx, msg)
			if err := w.ProcessMessage(msgCtx, msg); err != nil {
				w.HandleFailure(msgCtx, msg, err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	slog.InfoContext(runCtx, "worker stopped")
	return nil
}

// Stop cancels Run and waits for the in-flight message to finish. Run must
// have been started.
func (w *Worker) Stop() {
	w.mu.Lock()
	w.stopped = true
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	<-w.done
}

// ProcessMessage runs the handler for msg inside a task span and acks it on
// success. A handler panic is reported as an error.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) (err error) {
	span := logger.StartTaskSpan(ctx, msg.TraceParent, string(msg.TaskType), msg.ID)
	ctx = span.Context()
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "handler panicked", "panic", r)
			err = fmt.Errorf("handler panic: %v", r)
		}
		span.Finish(err)
	}()

	handler, ok := w.handlers[msg.TaskType]
	if !ok {
		return fmt.Errorf("%w: no handler for task type %q", ErrPermanent, msg.TaskType)
	}

	start := time.Now()
	if err := handler.Handle(ctx, msg); err != nil {
		return err
	}
	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Left pending; the reclaimer redelivers and handlers tolerate repeats.
		slog.WarnContext(ctx, "ack failed", "error", err)
	}

	slog.InfoContext(ctx, "message processed", "attempt", msg.Attempt, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// HandleFailure requeues msg, or dead-letters it when the error is permanent
// or its attempts are used up.
func (w *Worker) HandleFailure(ctx context.Context, msg queue.Message, err error) {
	if errors.Is(err, ErrPermanent) || msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "giving up on message", "error", err, "attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "dead-lettering failed", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "retrying message", "error", err, "attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "requeue failed", "error", requeueErr)
	}
}

func messageContext(ctx context.Context, msg queue.Message) context.Context {
	msgID := msg.ID
	taskType := string(msg.TaskType)
	return logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msgID,
		TaskType:  &taskType,
	})
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
