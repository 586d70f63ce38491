package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/upahaar/upahaar/app/jobs"
	"github.com/upahaar/upahaar/pkg/cache"
	"github.com/upahaar/upahaar/pkg/database"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/queue"
)

// upahaar queue:work — run queue workers without the HTTP server.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Process queued jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := boot(ctx); err != nil {
			return err
		}
		defer database.Close(ctx) //nolint:errcheck

		if err := cache.Connect(ctx); err != nil {
			logger.Warn("cache unavailable, using in-memory queue", "error", err)
		} else {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
			defer cache.Close() //nolint:errcheck
		}

		queue.UseMongo(database.Collection("failed_jobs"))
		jobs.RegisterAll()
		queue.StartWorkers(ctx, 4)

		<-ctx.Done()
		logger.Info("queue workers stopped")
		return nil
	},
}
