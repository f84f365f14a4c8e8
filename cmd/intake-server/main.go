// cmd/intake-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/database"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/common/observability"
	"dygs-jobs/internal/notifier"
	"dygs-jobs/internal/positions"
	"dygs-jobs/internal/ratelimit"
	"dygs-jobs/internal/resumes"
	"dygs-jobs/internal/server"
	"dygs-jobs/internal/storage"

	da "dygs-jobs/internal/handlers/download-archive"
	ga "dygs-jobs/internal/handlers/get-application"
	lp "dygs-jobs/internal/handlers/list-positions"
	sa "dygs-jobs/internal/handlers/submit-application"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("storage", cfg.Storage.Backend),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init MongoDB with retry ---
	var mongoClient *database.MongoClient
	if cfg.Storage.Backend == config.BackendMongo || cfg.Positions.Source == config.BackendMongo {
		err = retryWithBackoff(func() error {
			var err error
			mongoClient, err = database.NewMongo(ctx, cfg.Database.Mongo)
			if err != nil {
				return err
			}
			return mongoClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "MongoDB connection")

		if err != nil {
			zapLog.Fatal("mongo failed after retries", zap.Error(err))
		}
		defer mongoClient.Close(context.Background())
		zapLog.Info("MongoDB connected successfully")
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	if cfg.Storage.Backend == config.BackendPostgres || cfg.Positions.Source == config.BackendPostgres {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Init Redis (rate limiting only) ---
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		redisClient := database.NewRedis(cfg.Database.Redis)
		if err := redisClient.Ping(ctx); err != nil {
			// the limiter fails open, so an unreachable redis only loses throttling
			zapLog.Warn("redis unreachable, submissions will not be throttled", zap.Error(err))
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient.Client, cfg.RateLimit.Limit,
			config.GetDuration(cfg.RateLimit.Window), "submit", log)
	}

	var storeDeps storage.Dependencies
	var positionDeps positions.Dependencies
	if mongoClient != nil {
		storeDeps.Mongo = mongoClient.DB
		positionDeps.Mongo = mongoClient.DB
	}
	if pg != nil {
		storeDeps.Postgres = pg.DB
		positionDeps.Postgres = pg.DB
	}

	store, err := storage.New(ctx, cfg, storeDeps, log)
	if err != nil {
		zapLog.Fatal("storage init failed", zap.Error(err))
	}

	lister, err := positions.New(ctx, cfg.Positions, positionDeps, log)
	if err != nil {
		zapLog.Fatal("positions init failed", zap.Error(err))
	}

	objects, err := resumes.NewObjectStore(ctx, cfg.Resumes, log)
	if err != nil {
		zapLog.Fatal("resume storage init failed", zap.Error(err))
	}

	channel, err := notifier.New(ctx, cfg.Notifications)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}
	dispatcher := notifier.NewDispatcher(channel, config.GetDuration(cfg.Notifications.Timeout), log, obs)

	zapLog.Info("Components ready",
		zap.String("storage", store.Backend()),
		zap.String("positions", lister.Source()),
		zap.String("notifications", dispatcher.Channel()),
		zap.Bool("objectStorage", objects != nil),
		zap.Bool("rateLimit", limiter != nil),
	)

	requestTimeout := config.GetDuration(cfg.Server.RequestTimeout)
	submit := sa.NewHandler(sa.LoadConfig(cfg), store, objects, dispatcher, obs, log)
	list := lp.NewHandler(lister, requestTimeout, log)
	get := ga.NewHandler(store, requestTimeout, log)
	download := da.NewHandler(cfg.Storage.XLSX.Path, log)

	router := server.NewRouter(server.Handlers{
		ListPositions:     list.Handle,
		SubmitApplication: submit.Handle,
		GetApplication:    get.Handle,
		DownloadArchive:   download.Handle,
	}, server.Options{
		Logger:  log,
		Limiter: limiter,
		Ready: func(ctx context.Context) error {
			if mongoClient != nil {
				if err := mongoClient.Ping(ctx); err != nil {
					return err
				}
			}
			if pg != nil {
				return pg.Ping(ctx)
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		zapLog.Warn("pending notifications abandoned", zap.Error(err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		zapLog.Error("storage close failed", zap.Error(err))
	}

	zapLog.Info("Intake server stopped")
}
