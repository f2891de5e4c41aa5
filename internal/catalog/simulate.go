package catalog

import (
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

// TierFrequency compares a tier's configured weight with its observed share
// of a simulated run. Weight and Observed are percentages.
type TierFrequency struct {
	Rarity   domain.Rarity
	Name     string
	Weight   float64
	Count    int
	Observed float64
}

// Simulate draws n rarities from src and reports per-tier frequencies in
// ascending tier order. n <= 0 yields zero counts.
func (t *Table) Simulate(src rng.Source, n int) []TierFrequency {
	counts := make([]int, len(t.tiers))
	for range max(n, 0) {
		counts[t.Draw(src)]++
	}

	out := make([]TierFrequency, len(t.tiers))
	for i, tier := range t.tiers {
		out[i] = TierFrequency{
			Rarity: tier.Rarity,
			Name:   tier.Name,
			Weight: tier.Weight,
			Count:  counts[i],
		}
		if n > 0 {
			out[i].Observed = float64(counts[i]) / float64(n) * 100
		}
	}
	return out
}
