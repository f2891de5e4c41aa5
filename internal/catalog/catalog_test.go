package catalog

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/rng"
)

func threeTierTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]Tier{
			{Rarity: 0, Name: "Common", Weight: 40, UpgradeChance: 50},
			{Rarity: 1, Name: "Uncommon", Weight: 30, UpgradeChance: 40},
			{Rarity: 2, Name: "Rare", Weight: 30, UpgradeChance: 0},
		},
		[]Entry{
			{Rarity: 0, Name: "A", Price: 100},
			{Rarity: 0, Name: "B", Price: 200},
			{Rarity: 1, Name: "C", Price: 1000},
		},
	)
	require.NoError(t, err)
	return table
}

func TestDrawRarity_Boundaries(t *testing.T) {
	table := threeTierTable(t)

	tests := []struct {
		name string
		roll float64
		want domain.Rarity
	}{
		{"zero", 0, 0},
		{"just below first boundary", 39.9, 0},
		{"exactly first boundary", 40.0, 0},
		{"just above first boundary", 40.1, 1},
		{"second boundary", 70.0, 1},
		{"last tier", 99.99, 2},
		{"hundred falls back", 100.0, 0},
		{"above range falls back", 150.0, 0},
		{"negative falls back", -1, 0},
		{"NaN falls back", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.DrawRarity(tt.roll))
		})
	}
}

func TestDraw_UsesSource(t *testing.T) {
	table := threeTierTable(t)
	assert.Equal(t, domain.Rarity(1), table.Draw(rng.NewScripted(55)))
}

func TestDraw_FrequenciesConverge(t *testing.T) {
	table := Default()
	src := rng.NewSeeded(42)

	const n = 200_000
	counts := make(map[domain.Rarity]int)
	for range n {
		counts[table.Draw(src)]++
	}

	for _, tier := range table.Tiers() {
		observed := float64(counts[tier.Rarity]) / n * 100
		// 0.5 percentage points is well over four standard deviations for
		// the widest tier at this sample size.
		assert.InDelta(t, tier.Weight, observed, 0.5, "tier %d (%s)", tier.Rarity, tier.Name)
	}
}

func TestSimulate(t *testing.T) {
	table := threeTierTable(t)

	freqs := table.Simulate(rng.NewScripted(10, 55, 55, 99.5), 4)
	require.Len(t, freqs, 3)
	assert.Equal(t, 1, freqs[0].Count)
	assert.Equal(t, 2, freqs[1].Count)
	assert.Equal(t, 1, freqs[2].Count)
	assert.InDelta(t, 50.0, freqs[1].Observed, 1e-9)

	for _, f := range table.Simulate(rng.NewSeeded(1), 0) {
		assert.Zero(t, f.Count)
		assert.Zero(t, f.Observed)
	}
}

func TestDefault_MatchesBuiltInTable(t *testing.T) {
	table := Default()

	assert.InDelta(t, 100.0, table.WeightSum(), WeightSumTolerance)
	assert.Equal(t, domain.MaxRarity, table.MaxRarity())
	assert.Zero(t, table.UpgradeChance(domain.MaxRarity))

	wantEntries := []int{9, 8, 8, 7, 6, 6, 5, 4}
	wantChances := []float64{50, 40, 30, 20, 10, 5, 2, 0}
	for r, want := range wantEntries {
		assert.Len(t, table.Entries(domain.Rarity(r)), want, "tier %d", r)
		assert.Equal(t, wantChances[r], table.UpgradeChance(domain.Rarity(r)), "tier %d", r)
	}

	for _, tier := range table.Tiers() {
		for _, e := range table.Entries(tier.Rarity) {
			assert.Positive(t, e.Price, "%s", e.Name)
		}
	}
}

func TestNewTable_Validation(t *testing.T) {
	valid := func() []Tier {
		return []Tier{
			{Rarity: 0, Name: "Common", Weight: 60, UpgradeChance: 50},
			{Rarity: 1, Name: "Rare", Weight: 40, UpgradeChance: 0},
		}
	}

	tests := []struct {
		name    string
		mutate  func([]Tier) []Tier
		entries []Entry
		errMsg  string
	}{
		{
			name:   "no tiers",
			mutate: func([]Tier) []Tier { return nil },
			errMsg: ErrMsgNoTiers,
		},
		{
			name: "weights sum below 100",
			mutate: func(ts []Tier) []Tier {
				ts[0].Weight = 59
				return ts
			},
			errMsg: "weights sum to",
		},
		{
			name: "negative weight",
			mutate: func(ts []Tier) []Tier {
				ts[0].Weight = -10
				ts[1].Weight = 110
				return ts
			},
			errMsg: "negative weight",
		},
		{
			name: "rarity gap",
			mutate: func(ts []Tier) []Tier {
				ts[1].Rarity = 2
				return ts
			},
			errMsg: "expected 1",
		},
		{
			name: "upgrade chance above 100",
			mutate: func(ts []Tier) []Tier {
				ts[0].UpgradeChance = 101
				return ts
			},
			errMsg: "outside [0,100]",
		},
		{
			name: "top tier upgradeable",
			mutate: func(ts []Tier) []Tier {
				ts[1].UpgradeChance = 1
				return ts
			},
			errMsg: "must have upgrade chance 0",
		},
		{
			name:    "zero price",
			mutate:  func(ts []Tier) []Tier { return ts },
			entries: []Entry{{Rarity: 0, Name: "Free", Price: 0}},
			errMsg:  "non-positive price",
		},
		{
			name:   "duplicate name",
			mutate: func(ts []Tier) []Tier { return ts },
			entries: []Entry{
				{Rarity: 0, Name: "Dup", Price: 10},
				{Rarity: 0, Name: "Dup", Price: 20},
			},
			errMsg: "duplicate entry",
		},
		{
			name:    "unknown tier",
			mutate:  func(ts []Tier) []Tier { return ts },
			entries: []Entry{{Rarity: 5, Name: "Ghost", Price: 10}},
			errMsg:  "unknown tier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.mutate(valid()), tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewTable_ToleratesFloatDrift(t *testing.T) {
	_, err := NewTable([]Tier{
		{Rarity: 0, Weight: 0.1},
		{Rarity: 1, Weight: 0.2},
		{Rarity: 2, Weight: 99.7},
	}, nil)
	assert.NoError(t, err)
}

func TestNewTable_RejectsUnstorableTiers(t *testing.T) {
	tiers := make([]Tier, domain.MaxRarity+2)
	for i := range tiers {
		tiers[i] = Tier{Rarity: domain.Rarity(i)}
	}
	tiers[0].Weight = 100

	_, err := NewTable(tiers, nil)
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "storable maximum")
}

func TestHas(t *testing.T) {
	table := threeTierTable(t)

	assert.True(t, table.Has(0))
	assert.True(t, table.Has(2))
	assert.False(t, table.Has(3), "storable but not in this table")
	assert.False(t, table.Has(-1))
}

func TestPick(t *testing.T) {
	table := threeTierTable(t)

	t.Run("uniform index from source", func(t *testing.T) {
		e, err := table.Pick(0, rng.NewScripted().WithInts(1))
		require.NoError(t, err)
		assert.Equal(t, "B", e.Name)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := table.Pick(2, rng.NewScripted())
		assert.ErrorIs(t, err, domain.ErrEmptyRarityPool)
	})
}

func TestLookupAndOrdering(t *testing.T) {
	table := threeTierTable(t)

	e, ok := table.Lookup(0, "B")
	require.True(t, ok)
	assert.Equal(t, int64(200), e.Price)

	_, ok = table.Lookup(1, "B")
	assert.False(t, ok)

	byPrice := table.EntriesByPrice(0)
	require.Len(t, byPrice, 2)
	assert.Equal(t, "B", byPrice[0].Name)
	assert.Equal(t, "A", byPrice[1].Name)

	_, ok = table.Tier(9)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	t.Run("schema rejects unknown fields", func(t *testing.T) {
		_, err := Parse([]byte(`{"version":"1","tiers":[],"extra":true}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("schema rejects weight above 100", func(t *testing.T) {
		doc := `{"version":"1","tiers":[{"rarity":0,"name":"X","weight":150,"upgrade_chance":0,"items":[]}]}`
		_, err := Parse([]byte(doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("semantic check after schema", func(t *testing.T) {
		doc := `{"version":"1","tiers":[{"rarity":0,"name":"X","weight":50,"upgrade_chance":0,"items":[]}]}`
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("valid single tier", func(t *testing.T) {
		doc := `{"version":"1","tiers":[{"rarity":0,"name":"Only","weight":100,"upgrade_chance":0,
			"items":[{"name":"Brick","price":5}]}]}`
		table, err := Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, domain.Rarity(0), table.MaxRarity())
		assert.Len(t, table.Entries(0), 1)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		table, err := Load(ctx, "")
		require.NoError(t, err)
		assert.Len(t, table.Tiers(), 8)
	})

	t.Run("override file with empty pool", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		doc := `{"version":"2","tiers":[
			{"rarity":0,"name":"Low","weight":90,"upgrade_chance":10,"items":[{"name":"Nokia 3310","price":50}]},
			{"rarity":1,"name":"High","weight":10,"upgrade_chance":0,"items":[]}]}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		table, err := Load(ctx, path)
		require.NoError(t, err)
		_, err = table.Pick(1, rng.NewScripted())
		assert.ErrorIs(t, err, domain.ErrEmptyRarityPool)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read catalog file")
	})
}
