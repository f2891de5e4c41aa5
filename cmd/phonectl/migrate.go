package main

import (
	"context"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/osse101/PhonesBot_Go/internal/bootstrap"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}
	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			store, err := bootstrap.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			store.Close()
			printSuccess("%s store is up to date", cfg.StoreDriver)
			return nil
		},
	})
	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			statuses, err := bootstrap.MigrationStatus(ctx, cfg)
			if err != nil {
				return err
			}
			printHeader("Migrations (" + cfg.StoreDriver + ")")
			pending := 0
			for _, s := range statuses {
				applied := "pending"
				if s.State == goose.StateApplied {
					applied = s.AppliedAt.Format(time.RFC3339)
				} else {
					pending++
				}
				printRow("%5d  %-40s  %s", s.Source.Version, baseName(s.Source.Path), applied)
			}
			if pending > 0 {
				printWarn("%d pending migration(s), run `phonectl migrate up`", pending)
			} else {
				printSuccess("all %d migrations applied", len(statuses))
			}
			return nil
		},
	})
	return migrate
}
