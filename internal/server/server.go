// Package server boots the full application: configuration, storage
// backends, background workers and the HTTP listener.
package server

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

	"github.com/upahaar/upahaar/app/jobs"
	"github.com/upahaar/upahaar/app/routes"
	"github.com/upahaar/upahaar/config"
	"github.com/upahaar/upahaar/pkg/cache"
	"github.com/upahaar/upahaar/pkg/database"
	"github.com/upahaar/upahaar/pkg/event"
	upgrpc "github.com/upahaar/upahaar/pkg/grpc"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/queue"
	"github.com/upahaar/upahaar/pkg/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	queueWorkers    = 4
)

// Start boots every subsystem and blocks until the process receives an
// interrupt, then shuts down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := database.Connect(bootCtx); err != nil {
		return fmt.Errorf("server: connect mongo: %w", err)
	}
	defer database.Close(context.Background())

	setupLogging()

	if err := cache.Connect(bootCtx); err != nil {
		// Redis is optional; listings fall through to Mongo.
		logger.Warn("cache unavailable, continuing without it", "error", err)
	} else {
		defer cache.Close()
	}

	storage.Connect()
	setupQueue(ctx)
	setupListeners()

	var grpcSrv interface{ GracefulStop() }
	if port := config.GRPCPort(); port != "" {
		srv, _, err := upgrpc.Start(port)
		if err != nil {
			return fmt.Errorf("server: start grpc: %w", err)
		}
		grpcSrv = srv
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           routes.Build().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: http: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// setupLogging mirrors application logs into Mongo alongside stdout once the
// database is up.
func setupLogging() {
	mongoHandler, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDatabase(), "logs")
	if err != nil {
		logger.Warn("mongo log sink unavailable", "error", err)
		return
	}
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger.SetHandler(logger.NewMultiHandler(stdout, mongoHandler))
}

// setupQueue selects the queue driver, registers job types and launches the
// workers.
func setupQueue(ctx context.Context) {
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseMongo(database.Collection("failed_jobs"))
	jobs.RegisterAll()
	queue.StartWorkers(ctx, queueWorkers)
}

// setupListeners wires domain events. A completed catalogue import
// invalidates every cached listing page.
func setupListeners() {
	event.Listen("catalog.imported", func(payload interface{}) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.FlushPrefix(ctx, "catalog:"); err != nil {
			logger.Error("flush catalog cache", "error", err)
		}
	})
}
