package main

import (
	"context"
	"fmt"
	"os"

	"github.com/layer-3/campus/adapters/mongodb"
	"github.com/layer-3/campus/internal/config"
	"github.com/layer-3/campus/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes the service relies on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(os.Stdout, cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := mongodb.Connect(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Client().Disconnect(context.Background())
			}()

			if err := mongodb.EnsureIndexes(ctx, db); err != nil {
				return fmt.Errorf("failed to create indexes: %w", err)
			}

			log.Info("indexes created", "database", cfg.Mongo.Name)

			return nil
		},
	}
}
