// Package db はリレーショナルミラー（PostgreSQL/SQLite）への接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	reportadapters "nexora_backend/internal/feature/reports/adapters"
	"nexora_backend/internal/platform/config"
)

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

const retryInterval = 3 * time.Second

// Dialector は設定のドライバーに対応するgormのDialectorを返します。
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	return dialector(cfg.Store.Driver, dsn), nil
}

// DSN は設定のドライバーに対応する接続文字列（SQLiteはファイルパス）を返します。
func DSN(cfg *config.Config) (string, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return cfg.Postgres.DSN, nil
	case config.DriverSQLite:
		return cfg.SQLite.Path, nil
	default:
		return "", fmt.Errorf("store driver %q is not relational", cfg.Store.Driver)
	}
}

func dialector(driver, dsn string) gorm.Dialector {
	if driver == config.DriverPostgres {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// OpenDB は設定に従ってミラーDBへ接続します。接続はStore.Timeoutまでリトライし、
// Store.Migrateが有効ならテーブルを作成します。
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	opener := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialector(cfg.Store.Driver, dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	}

	db, err := ConnectWithRetry(dsn, cfg.Store.Timeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Store.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("relational store connected", "driver", cfg.Store.Driver)
	return db, nil
}

// Migrate はミラーのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&reportadapters.CompanyDocumentModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// ConnectWithRetry は接続に成功するかtimeoutを過ぎるまで3秒間隔でリトライします。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, retryInterval, opener)
}

func connectWithRetry(dsn string, timeout, interval time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(interval)
	}
}
