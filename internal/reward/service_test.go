package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/database/sqlite"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/rng"
	"github.com/osse101/PhonesBot_Go/internal/testing/ledgertest"
)

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ledger *sqlite.Ledger
	rnd    *rng.Scripted
	events *event.Recorder
	now    time.Time
	svc    Service
}

func newFixture(t *testing.T, table *catalog.Table, rolls ...float64) *fixture {
	t.Helper()
	f := &fixture{
		ledger: ledgertest.New(t),
		rnd:    rng.NewScripted(rolls...),
		events: &event.Recorder{},
		now:    epoch,
	}
	cd := cooldown.NewService(cooldown.Config{}, cooldown.WithClock(func() time.Time { return f.now }))
	f.svc = NewService(f.ledger, table, f.rnd, cd, f.events)
	ledgertest.Seed(t, f.ledger, "1", 500)
	return f
}

func TestDrawCard_FirstDraw(t *testing.T) {
	f := newFixture(t, catalog.Default(), 10)
	f.rnd.WithInts(0)

	res, err := f.svc.DrawCard(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "Apple iPhone 3G", res.Item.Name)
	assert.Equal(t, domain.Rarity(0), res.Item.Rarity)
	assert.Equal(t, int64(800), res.Item.Price)
	assert.Equal(t, 2, res.DrawCount)
	assert.Equal(t, epoch.Add(3*time.Hour), res.NextDraw)

	u, err := f.ledger.GetUser(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 1, u.TotalItems)
	assert.Equal(t, int64(500), u.Balance, "drawing is free")
	require.NotNil(t, u.LastDrawAt)
	assert.Equal(t, epoch, *u.LastDrawAt)

	items, err := f.ledger.ListItems(context.Background(), "1", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, res.Item.ID, items[0].ID)

	assert.Equal(t, []event.Type{event.CardDrawn}, f.events.Types())
}

func TestDrawCard_RollPicksTier(t *testing.T) {
	tests := []struct {
		name   string
		roll   float64
		rarity domain.Rarity
	}{
		{"inside common", 39.9, 0},
		{"common boundary inclusive", 40, 0},
		{"just past common", 40.1, 1},
		{"rare band", 80, 2},
		{"out of range falls back", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, catalog.Default(), tt.roll)
			res, err := f.svc.DrawCard(context.Background(), "1")
			require.NoError(t, err)
			assert.Equal(t, tt.rarity, res.Item.Rarity)
		})
	}
}

func TestDrawCard_Cooldown(t *testing.T) {
	f := newFixture(t, catalog.Default(), 10)
	ctx := context.Background()

	_, err := f.svc.DrawCard(ctx, "1")
	require.NoError(t, err)

	f.now = epoch.Add(time.Hour)
	_, err = f.svc.DrawCard(ctx, "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOnCooldown)

	var cdErr cooldown.ErrOnCooldown
	require.True(t, errors.As(err, &cdErr))
	assert.Equal(t, 2*time.Hour, cdErr.Remaining)
	assert.Equal(t, domain.ActionDraw, cdErr.Action)

	u, err := f.ledger.GetUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, u.TotalItems, "rejected draw mutates nothing")
	assert.Len(t, f.events.Events(), 1)

	f.now = epoch.Add(3 * time.Hour)
	_, err = f.svc.DrawCard(ctx, "1")
	require.NoError(t, err, "cooldown ends exactly at 3h")
}

func TestDrawCard_CooldownPerk(t *testing.T) {
	f := newFixture(t, catalog.Default(), 10)
	ctx := context.Background()

	last := epoch.Add(-160 * time.Minute)
	ledgertest.SetUser(t, f.ledger, "1", func(u *domain.User) { u.LastDrawAt = &last })

	_, err := f.svc.DrawCard(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrOnCooldown, "2h40m is not enough without the perk")

	ledgertest.GrantPerk(t, f.ledger, "1", domain.PerkDrawCooldown)
	res, err := f.svc.DrawCard(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(150*time.Minute), res.NextDraw)
}

func TestDrawCard_UnknownUser(t *testing.T) {
	f := newFixture(t, catalog.Default(), 10)

	_, err := f.svc.DrawCard(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, f.events.Events())
}

func TestDrawCard_EmptyPool(t *testing.T) {
	table, err := catalog.NewTable(
		[]catalog.Tier{
			{Rarity: 0, Name: "Common", Weight: 50, UpgradeChance: 50},
			{Rarity: 1, Name: "Rare", Weight: 50, UpgradeChance: 0},
		},
		[]catalog.Entry{{Rarity: 0, Name: "Brick", Price: 100}},
	)
	require.NoError(t, err)

	f := newFixture(t, table, 75)
	_, err = f.svc.DrawCard(context.Background(), "1")
	require.ErrorIs(t, err, domain.ErrEmptyRarityPool)

	u, err := f.ledger.GetUser(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, u.LastDrawAt, "failed draw does not start the cooldown")
	assert.Equal(t, 1, u.DrawCount)
	assert.Zero(t, u.TotalItems)
	assert.Empty(t, f.events.Events())
}
