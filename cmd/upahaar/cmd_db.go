package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upahaar/upahaar/config"
	"github.com/upahaar/upahaar/database/indexes"
	"github.com/upahaar/upahaar/database/seeders"
	"github.com/upahaar/upahaar/pkg/database"
)

// boot loads configuration and connects Mongo for one-shot commands.
func boot(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// upahaar seed — run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := boot(ctx); err != nil {
			return err
		}
		defer database.Close(ctx) //nolint:errcheck

		fmt.Println("Seeding database…")
		return seeders.RunAll(ctx)
	},
}

// upahaar index:ensure — create the Mongo indexes the app expects.
var indexEnsureCmd = &cobra.Command{
	Use:   "index:ensure",
	Short: "Create all MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := boot(ctx); err != nil {
			return err
		}
		defer database.Close(ctx) //nolint:errcheck

		fmt.Println("Ensuring indexes…")
		if err := indexes.EnsureAll(ctx); err != nil {
			return err
		}
		fmt.Println("done")
		return nil
	},
}
