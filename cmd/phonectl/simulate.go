package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

const defaultSimulatedDraws = 100000

func newSimulateCmd() *cobra.Command {
	sim := &cobra.Command{
		Use:   "simulate",
		Short: "Offline simulations",
	}

	var (
		n           int
		seed        uint64
		catalogPath string
	)
	draws := &cobra.Command{
		Use:   "draws",
		Short: "Monte-Carlo the rarity table and compare observed with configured frequencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("--n must be positive, got %d", n)
			}
			table, err := catalog.Load(cmd.Context(), catalogPath)
			if err != nil {
				return err
			}

			var src rng.Source = rng.System()
			if cmd.Flags().Changed("seed") {
				src = rng.NewSeeded(seed)
			}

			printHeader(fmt.Sprintf("%d simulated draws", n))
			printRow("%-6s  %-12s  %9s  %9s  %8s  %10s", "RARITY", "NAME", "EXPECTED", "OBSERVED", "DRIFT", "COUNT")
			for _, f := range table.Simulate(src, n) {
				drift := f.Observed - f.Weight
				line := fmt.Sprintf("%-6d  %-12s  %8.3f%%  %8.3f%%  %+7.3f  %10d", f.Rarity, f.Name, f.Weight, f.Observed, drift, f.Count)
				if math.Abs(drift) > driftWarnThreshold(f.Weight, n) {
					printWarn("%s", line)
					continue
				}
				printRow("%s", line)
			}
			return nil
		},
	}
	draws.Flags().IntVar(&n, "n", defaultSimulatedDraws, "number of draws")
	draws.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible run")
	draws.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (defaults to the built-in catalog)")

	sim.AddCommand(draws)
	return sim
}

// driftWarnThreshold is four standard deviations of the observed percentage
// for a tier of weight w over n draws.
func driftWarnThreshold(w float64, n int) float64 {
	p := w / 100
	return 4 * 100 * math.Sqrt(p*(1-p)/float64(n))
}
