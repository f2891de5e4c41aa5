// Package bootstrap assembles the application context: store, catalog,
// services, event system and HTTP server.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/catalog"
	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/cooldown"
	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/economy"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/reward"
	"github.com/osse101/PhonesBot_Go/internal/rng"
	"github.com/osse101/PhonesBot_Go/internal/server"
	"github.com/osse101/PhonesBot_Go/internal/upgrade"
	"github.com/osse101/PhonesBot_Go/internal/user"
)

// App is the explicit application context. Everything a request needs is
// reachable from here and nothing lives in package globals.
type App struct {
	Config  *config.Config
	Tuning  *config.Tuning
	Store   Store
	Catalog *catalog.Table
	Random  rng.Source

	Bus       event.Bus
	Publisher *event.ResilientPublisher

	Users    user.Service
	Economy  economy.Service
	Rewards  reward.Service
	Upgrades upgrade.Service

	Server *server.Server
}

// New builds the application. On error every resource opened so far is
// released.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	app := &App{Config: cfg, Random: rng.System()}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	if app.Tuning, err = config.LoadTuning(ctx, cfg.TuningPath); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadTuningFailed, err)
	}
	logger.Info(LogMsgTuningLoaded, "path", cfg.TuningPath)

	if app.Catalog, err = catalog.Load(ctx, cfg.CatalogPath); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCatalogFailed, err)
	}
	logger.Info(LogMsgCatalogLoaded, "tiers", len(app.Catalog.Tiers()), "max_rarity", app.Catalog.MaxRarity())

	if app.Store, err = OpenStore(ctx, cfg); err != nil {
		return nil, err
	}

	if app.Bus, app.Publisher, err = InitializeEventSystem(cfg); err != nil {
		return nil, err
	}

	app.wireServices()
	app.Server = server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
	}, server.Services{
		Users:    app.Users,
		Economy:  app.Economy,
		Rewards:  app.Rewards,
		Upgrades: app.Upgrades,
		Catalog:  app.Catalog,
		Store:    app.Store,
	})

	return app, nil
}

func (a *App) wireServices() {
	if a.Config.DevMode {
		logger.Warn(LogMsgDevModeEnabled)
	}
	cooldowns := cooldown.NewService(CooldownConfig(a.Tuning, a.Config.DevMode))

	a.Users = user.NewService(a.Store, a.Publisher,
		user.WithStartingBalance(a.Tuning.StartingBalance))
	a.Economy = economy.NewService(a.Store, a.Catalog, a.Random, cooldowns, a.Users, a.Publisher,
		economy.ConfigFromTuning(a.Tuning, a.Config.LeaderboardCacheSize))
	a.Rewards = reward.NewService(a.Store, a.Catalog, a.Random, cooldowns, a.Publisher)
	a.Upgrades = upgrade.NewService(a.Store, a.Catalog, a.Random, a.Publisher,
		upgrade.WithLuckBonus(a.Tuning.UpgradeLuck))
}

// CooldownConfig maps the tuning cooldowns onto the cooldown service
func CooldownConfig(t *config.Tuning, devMode bool) cooldown.Config {
	return cooldown.Config{
		DevMode: devMode,
		Cooldowns: map[string]time.Duration{
			domain.ActionDraw:         t.Cooldowns.Draw,
			domain.ActionDrawWithPerk: t.Cooldowns.DrawWithPerk,
			domain.ActionDaily:        t.Cooldowns.Daily,
			domain.ActionFarm:         t.Cooldowns.Farm,
		},
	}
}

// Close releases resources without the HTTP server, for failed startups
// and short-lived tools.
func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Shutdown(context.Background())
	}
	if a.Store != nil {
		a.Store.Close()
	}
}
