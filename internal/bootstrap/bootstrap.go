// Package bootstrap は設定からカタログとカートを組み立てる（cmd/api と cmd/storefront 共通）。
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Catalog *catalog.Store
	Cart    *cart.Machine

	closers []func() error
}

// New はカタログを読み込み、保存先からカートを復元する。
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", zap.Int("items", store.Len()), zap.String("path", cfg.CatalogPath))

	kv, closeKV, err := OpenKVStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	persistence := cart.NewPersistence(kv, cfg.CartKey, logger.Named("cart"))
	machine := cart.NewMachine(ctx, persistence, logger.Named("cart"))

	return &App{
		Catalog: store,
		Cart:    machine,
		closers: []func() error{closeKV},
	}, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenKVStore はCART_STOREに応じたKVストアと、その後始末を返す。
func OpenKVStore(ctx context.Context, cfg config.Config) (repo.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CartStore {
	case config.CartStoreMemory:
		return infraRepo.NewKVMemoryRepository(), noop, nil

	case config.CartStoreFile:
		r, err := infraRepo.NewKVFileRepository(cfg.CartFileDir)
		if err != nil {
			return nil, nil, err
		}
		return r, noop, nil

	case config.CartStoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		r, err := infraRepo.NewKVSQLiteRepository(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return r, sqlDB.Close, nil

	case config.CartStorePostgres:
		gormDB, err := db.Connect(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		return openGormKVStore(ctx, gormDB)

	default:
		return nil, nil, fmt.Errorf("unknown cart store %q", cfg.CartStore)
	}
}

// 接続済みのGORMからKVストアを作る（テーブルが無ければ作成）
func openGormKVStore(ctx context.Context, gormDB *gorm.DB) (repo.KVStore, func() error, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("postgres pool: %w", err)
	}
	r := infraRepo.NewKVGormRepository(gormDB)
	if err := r.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("postgres migrate: %w", err)
	}
	return r, sqlDB.Close, nil
}
