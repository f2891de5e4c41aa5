package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/database"
	"github.com/osse101/PhonesBot_Go/internal/database/postgres"
	"github.com/osse101/PhonesBot_Go/internal/database/sqlite"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

// Store is a migrated ledger owned by the application
type Store interface {
	repository.Ledger
	Ping(ctx context.Context) error
	Close()
}

// OpenStore opens the ledger selected by STORE_DRIVER and applies pending
// migrations.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return openPostgres(ctx, cfg)
	case config.StoreDriverSQLite:
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf(ErrMsgUnsupportedStoreDriver, cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (Store, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), poolConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenStoreFailed, err)
	}

	if err := database.MigratePool(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf(ErrMsgMigrateFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgStoreOpened, "driver", config.StoreDriverPostgres, "tx_timeout", cfg.DBTxTimeout)
	return postgres.NewLedger(pool, cfg.DBTxTimeout), nil
}

func openSQLite(ctx context.Context, cfg *config.Config) (Store, error) {
	ledger, err := openSQLiteLedger(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, ledger.DB(), goose.DialectSQLite3); err != nil {
		ledger.Close()
		return nil, fmt.Errorf(ErrMsgMigrateFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgStoreOpened, "driver", config.StoreDriverSQLite, "path", cfg.SQLitePath)
	return ledger, nil
}

func openSQLiteLedger(cfg *config.Config) (*sqlite.Ledger, error) {
	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, fmt.Errorf(ErrMsgCreateSQLiteDirFailed, err)
		}
	}

	ledger, err := sqlite.Open(cfg.SQLitePath, cfg.DBTxTimeout)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenStoreFailed, err)
	}
	return ledger, nil
}

func poolConfig(cfg *config.Config) database.PoolConfig {
	return database.PoolConfig{
		MaxConns:    cfg.DBMaxConns,
		MaxConnIdle: cfg.DBMaxConnIdleTime,
		MaxConnLife: cfg.DBMaxConnLifetime,
	}
}

// MigrationStatus reports applied and pending migrations of the configured
// store without applying any.
func MigrationStatus(ctx context.Context, cfg *config.Config) ([]*goose.MigrationStatus, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), poolConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf(ErrMsgOpenStoreFailed, err)
		}
		defer pool.Close()
		return database.PoolMigrationStatus(ctx, pool)
	case config.StoreDriverSQLite:
		ledger, err := openSQLiteLedger(cfg)
		if err != nil {
			return nil, err
		}
		defer ledger.Close()
		return database.MigrationStatus(ctx, ledger.DB(), goose.DialectSQLite3)
	default:
		return nil, fmt.Errorf(ErrMsgUnsupportedStoreDriver, cfg.StoreDriver)
	}
}
