// Package catalog holds the immutable rarity table and phone catalog, and
// the weighted draw over it.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

// ErrInvalidCatalog is returned when a table fails semantic validation
var ErrInvalidCatalog = errors.New("invalid catalog")

// Tier is one rarity tier. Weight and UpgradeChance are percentages.
type Tier struct {
	Rarity        domain.Rarity `json:"rarity"`
	Name          string        `json:"name"`
	Weight        float64       `json:"weight"`
	UpgradeChance float64       `json:"upgrade_chance"`
}

// Entry is a catalog phone with its current face value
type Entry struct {
	Rarity domain.Rarity `json:"rarity"`
	Name   string        `json:"name"`
	Price  int64         `json:"price"`
}

// Table is the validated, read-only rarity table and catalog.
// It is safe for concurrent use.
type Table struct {
	tiers   []Tier
	entries map[domain.Rarity][]Entry
	byName  map[domain.Rarity]map[string]Entry
}

// NewTable validates tiers and entries and builds a Table.
// Tiers must be listed in ascending order starting at 0.
func NewTable(tiers []Tier, entries []Entry) (*Table, error) {
	if err := validateTiers(tiers); err != nil {
		return nil, err
	}

	t := &Table{
		tiers:   append([]Tier(nil), tiers...),
		entries: make(map[domain.Rarity][]Entry, len(tiers)),
		byName:  make(map[domain.Rarity]map[string]Entry, len(tiers)),
	}
	for _, tier := range tiers {
		t.byName[tier.Rarity] = make(map[string]Entry)
	}

	for _, e := range entries {
		names, ok := t.byName[e.Rarity]
		if !ok {
			return nil, fmt.Errorf(ErrFmtEntryUnknownTier, ErrInvalidCatalog, e.Name, e.Rarity)
		}
		if e.Price <= 0 {
			return nil, fmt.Errorf(ErrFmtNonPositivePrice, ErrInvalidCatalog, e.Name, e.Rarity, e.Price)
		}
		if _, dup := names[e.Name]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateEntry, ErrInvalidCatalog, e.Name, e.Rarity)
		}
		names[e.Name] = e
		t.entries[e.Rarity] = append(t.entries[e.Rarity], e)
	}

	return t, nil
}

func validateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, ErrMsgNoTiers)
	}
	if !domain.Rarity(len(tiers) - 1).Valid() {
		return fmt.Errorf(ErrFmtTooManyTiers, ErrInvalidCatalog, len(tiers), int(domain.MaxRarity)+1)
	}

	var sum float64
	for i, tier := range tiers {
		if int(tier.Rarity) != i {
			return fmt.Errorf(ErrFmtTierOutOfOrder, ErrInvalidCatalog, i, tier.Rarity, i)
		}
		if tier.Weight < 0 || math.IsNaN(tier.Weight) {
			return fmt.Errorf(ErrFmtNegativeWeight, ErrInvalidCatalog, tier.Rarity, tier.Weight)
		}
		if tier.UpgradeChance < 0 || tier.UpgradeChance > 100 || math.IsNaN(tier.UpgradeChance) {
			return fmt.Errorf(ErrFmtUpgradeChanceRange, ErrInvalidCatalog, tier.Rarity, tier.UpgradeChance)
		}
		sum += tier.Weight
	}

	if math.Abs(sum-WeightSumTarget) > WeightSumTolerance {
		return fmt.Errorf(ErrFmtWeightSum, ErrInvalidCatalog, sum, WeightSumTarget)
	}

	top := tiers[len(tiers)-1]
	if top.UpgradeChance != 0 {
		return fmt.Errorf(ErrFmtTopTierUpgradeable, ErrInvalidCatalog, top.Rarity, top.UpgradeChance)
	}

	return nil
}

// Tiers returns a copy of the tiers in ascending order
func (t *Table) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}

// Tier returns the tier for r
func (t *Table) Tier(r domain.Rarity) (Tier, bool) {
	if r < 0 || int(r) >= len(t.tiers) {
		return Tier{}, false
	}
	return t.tiers[r], true
}

// Has reports whether r is a tier of this table
func (t *Table) Has(r domain.Rarity) bool {
	return r >= 0 && r <= t.MaxRarity()
}

// MaxRarity returns the highest configured tier
func (t *Table) MaxRarity() domain.Rarity {
	return domain.Rarity(len(t.tiers) - 1)
}

// WeightSum returns the total of all draw weights
func (t *Table) WeightSum() float64 {
	var sum float64
	for _, tier := range t.tiers {
		sum += tier.Weight
	}
	return sum
}

// UpgradeChance returns the upgrade-success percentage of r, 0 for unknown tiers
func (t *Table) UpgradeChance(r domain.Rarity) float64 {
	tier, ok := t.Tier(r)
	if !ok {
		return 0
	}
	return tier.UpgradeChance
}

// Entries returns the entries of r in catalog order
func (t *Table) Entries(r domain.Rarity) []Entry {
	return append([]Entry(nil), t.entries[r]...)
}

// EntriesByPrice returns the entries of r ordered by price descending, then name
func (t *Table) EntriesByPrice(r domain.Rarity) []Entry {
	out := t.Entries(r)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price > out[j].Price
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Lookup finds the entry named name in tier r
func (t *Table) Lookup(r domain.Rarity, name string) (Entry, bool) {
	e, ok := t.byName[r][name]
	return e, ok
}

// DrawRarity maps a roll in [0, 100) to a tier: the first tier, in ascending
// order, whose cumulative weight is >= roll. Rolls outside [0, 100) and rolls
// no tier covers fall back to tier 0.
func (t *Table) DrawRarity(roll float64) domain.Rarity {
	if roll < 0 || roll >= WeightSumTarget || math.IsNaN(roll) {
		return 0
	}

	var cumulative float64
	for _, tier := range t.tiers {
		cumulative += tier.Weight
		if cumulative >= roll {
			return tier.Rarity
		}
	}
	return 0
}

// Draw rolls src once and returns the drawn tier
func (t *Table) Draw(src rng.Source) domain.Rarity {
	return t.DrawRarity(src.Float100())
}

// Pick selects one entry of tier r uniformly at random
func (t *Table) Pick(r domain.Rarity, src rng.Source) (Entry, error) {
	pool := t.entries[r]
	if len(pool) == 0 {
		return Entry{}, fmt.Errorf(ErrFmtEmptyPool, domain.ErrEmptyRarityPool, r)
	}
	return pool[src.IntRange(0, len(pool)-1)], nil
}
