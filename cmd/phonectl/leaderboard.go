package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/PhonesBot_Go/internal/bootstrap"
	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/economy"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

const leaderboardTimeout = 30 * time.Second

func newLeaderboardCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the richest users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), leaderboardTimeout)
			defer cancel()

			tuning, err := config.LoadTuning(ctx, cfg.TuningPath)
			if err != nil {
				return err
			}
			table, err := catalog.Load(ctx, cfg.CatalogPath)
			if err != nil {
				return err
			}
			store, err := bootstrap.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			// Read-only: cooldowns and recipient lookup are never consulted
			econ := economy.NewService(store, table, rng.System(), nil, nil, event.NopPublisher{},
				economy.ConfigFromTuning(tuning, cfg.LeaderboardCacheSize))
			entries, err := econ.Leaderboard(ctx, limit)
			if err != nil {
				return err
			}

			printHeader("Leaderboard")
			if len(entries) == 0 {
				printWarn("no users yet")
				return nil
			}
			for _, e := range entries {
				name := e.Username
				if name == "" {
					name = e.UserID
				}
				printRow("%3d. %-24s %12s pts  %4d phones", e.Rank, name, formatPoints(e.Balance), e.ItemCount)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of rows (0 uses the configured default)")
	return cmd
}
