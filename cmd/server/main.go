package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"meetapp.app/api/common/id"
	"meetapp.app/api/common/logger"
	"meetapp.app/api/common/otel"
	"meetapp.app/api/core/config"
	"meetapp.app/api/core/db"
	"meetapp.app/api/internal/auth"
	"meetapp.app/api/internal/http/middleware"
	httprouter "meetapp.app/api/internal/http/router"
	"meetapp.app/api/internal/queue"
	"meetapp.app/api/internal/service"
	"meetapp.app/api/internal/storage"
	"meetapp.app/api/internal/store"
)

const (
	serverNodeID    = 1
	shutdownTimeout = 10 * time.Second
)

func main() {
	fmt.Print(banner + "\n")
	if err := run(); err != nil {
		slog.Error("meetapp api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The otelslog bridge needs the global logger provider, so OTel goes first.
	telemetry, err := otel.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up otel: %w", err)
	}
	logger.Setup(cfg)
	slog.InfoContext(ctx, "meetapp api starting",
		"env", cfg.Env,
		"timezone", cfg.Timezone,
		"otel", telemetry != nil)

	if err := id.Init(serverNodeID); err != nil {
		return fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer database.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}

	redisClient, err := connectRedis(ctx, cfg.Queue.RedisURL)
	if err != nil {
		return err
	}
	producer := queue.NewRedisProducer(redisClient, queue.ProducerConfig{
		Stream: cfg.Queue.RedisStream,
		MaxLen: cfg.Queue.StreamMaxLen,
	}, slog.Default())
	defer producer.Close()

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("initializing %s storage: %w", cfg.Storage.Driver, err)
	}

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		producer,
		auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.ExpiresIn),
		files,
		cfg.Location(),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withCORS(cfg.CORS, newEngine(cfg, services)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func newEngine(cfg config.Config, services *service.Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	// Span first so recovery and access logs carry the trace.
	if cfg.OTel.Enabled() {
		engine.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	engine.Use(middleware.Recovery(), middleware.Logger())

	httprouter.SetupRoutes(engine, services, httprouter.RouterConfig{})
	return engine
}

func withCORS(cfg config.CORSConfig, next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})(next)
}

const banner = `
 __  __           _
|  \/  | ___  ___| |_ __ _ _ __  _ __
| |\/| |/ _ \/ _ \ __/ _' | '_ \| '_ \
| |  | |  __/  __/ || (_| | |_) | |_) |
|_|  |_|\___|\___|\__\__,_| .__/| .__/
                          |_|   |_|    api
`
