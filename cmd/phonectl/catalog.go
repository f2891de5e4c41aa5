package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cat := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog commands",
	}
	cat.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Validate a catalog file and print tier stats",
		Long:  "Validate a catalog file against the schema and semantic rules. Without a path the built-in catalog is checked.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			table, err := catalog.Load(cmd.Context(), path)
			if err != nil {
				return err
			}

			source := path
			if source == "" {
				source = "built-in catalog"
			}
			printHeader(source)
			printRow("%-6s  %-12s  %7s  %8s  %7s  %s", "RARITY", "NAME", "WEIGHT", "UPGRADE", "PHONES", "PRICE RANGE")
			for _, tier := range table.Tiers() {
				entries := table.EntriesByPrice(tier.Rarity)
				priceRange := "-"
				if len(entries) > 0 {
					priceRange = formatPoints(entries[len(entries)-1].Price) + " .. " + formatPoints(entries[0].Price)
				}
				printRow("%-6d  %-12s  %6.2f%%  %7.2f%%  %7d  %s",
					tier.Rarity, tier.Name, tier.Weight, tier.UpgradeChance, len(entries), priceRange)
			}
			printSuccess("catalog valid: %d tiers, weights sum to %.2f", len(table.Tiers()), table.WeightSum())
			return nil
		},
	})
	return cat
}
