package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"meetapp.app/api/common/id"
	"meetapp.app/api/common/logger"
	"meetapp.app/api/common/otel"
	"meetapp.app/api/core/config"
	"meetapp.app/api/internal/mailer"
	"meetapp.app/api/internal/queue"
	"meetapp.app/api/internal/worker"
)

const (
	workerNodeID    = 2
	shutdownTimeout = 30 * time.Second
)

func main() {
	fmt.Print(banner + "\n")
	if err := run(); err != nil {
		slog.Error("meetapp worker exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	telemetry, err := otel.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up otel: %w", err)
	}
	logger.Setup(cfg)
	slog.InfoContext(ctx, "meetapp worker starting",
		"env", cfg.Env,
		"group", cfg.Queue.RedisGroup,
		"consumer", cfg.Queue.RedisConsumer,
		"mail_driver", cfg.Mail.Driver)

	if err := id.Init(workerNodeID); err != nil {
		return fmt.Errorf("initializing id generator: %w", err)
	}

	opts, err := redis.ParseURL(cfg.Queue.RedisURL)
	if err != nil {
		return fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Queue.RedisStream,
		Group:        cfg.Queue.RedisGroup,
		Consumer:     cfg.Queue.RedisConsumer,
		DLQStream:    cfg.Queue.RedisDLQStream,
		RequeueDelay: cfg.Queue.RequeueDelay,
	})
	if err != nil {
		return err
	}

	sender, err := mailer.New(ctx, cfg.Mail)
	if err != nil {
		return fmt.Errorf("creating %s mail sender: %w", cfg.Mail.Driver, err)
	}
	renderer, err := mailer.NewRenderer(cfg.Mail.FromName, cfg.Mail.FromEmail, cfg.Location())
	if err != nil {
		return fmt.Errorf("parsing mail templates: %w", err)
	}

	w := worker.New(consumer, worker.Config{MaxAttempts: cfg.Queue.MaxAttempts})
	w.Register(queue.TaskTypeNewSubscriptionMail, worker.NewNewSubscriptionMailHandler(renderer, sender))

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:   cfg.Queue.RedisStream,
		Group:    cfg.Queue.RedisGroup,
		Consumer: cfg.Queue.RedisConsumer + "-reclaimer",
		MinIdle:  cfg.Queue.ReclaimMinIdle,
		Interval: cfg.Queue.ReclaimInterval,
	}, consumer, w.ProcessMessage, w.HandleFailure)

	// The loops run on a context detached from the signal so a SIGTERM lets
	// the in-flight message finish; Stop below ends them.
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		reclaimer.Run(gctx)
		return nil
	})

	select {
	case <-ctx.Done():
	case <-gctx.Done():
	}
	slog.Info("shutting down worker")

	stopped := make(chan error, 1)
	go func() {
		reclaimer.Stop()
		w.Stop()
		stopped <- g.Wait()
	}()

	var errs []error
	select {
	case err := <-stopped:
		if err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, err)
		}
	case <-time.After(shutdownTimeout):
		errs = append(errs, errors.New("shutdown timed out with a message in flight"))
	}

	if telemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const banner = `
 __  __           _                                    _
|  \/  | ___  ___| |_ __ _ _ __  _ __   __      _____ | |_ __ ___ _ __
| |\/| |/ _ \/ _ \ __/ _' | '_ \| '_ \  \ \ /\ / / _ \| | '__/ _ \ '__|
| |  | |  __/  __/ || (_| | |_) | |_) |  \ V  V / (_) | | | |  __/ |
|_|  |_|\___|\___|\__\__,_| .__/| .__/    \_/\_/ \___/|_|_|  \___|_|
                          |_|   |_|
`
