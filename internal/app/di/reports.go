// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	reportadapters "nexora_backend/internal/feature/reports/adapters"
	reportmongo "nexora_backend/internal/feature/reports/adapters/mongodb"
	"nexora_backend/internal/feature/reports/usecase"
	"nexora_backend/internal/platform/cache"
	"nexora_backend/internal/platform/config"
	platformdb "nexora_backend/internal/platform/db"
	platformhandler "nexora_backend/internal/platform/http/handler"
	platformmongo "nexora_backend/internal/platform/mongodb"
	platformredis "nexora_backend/internal/platform/redis"
)

// DocumentWriter はリレーショナルミラーへのドキュメント投入を抽象化します。
type DocumentWriter interface {
	SaveDocuments(ctx context.Context, docs [][]byte) error
}

// Reports はreportsフィーチャーの組み立て結果です。
type Reports struct {
	Usecase *usecase.ReportUsecase
	// Check はストアの疎通確認です（/healthz用）。
	Check platformhandler.StoreCheck
	// Writer はミラー使用時のみ非nilです。
	Writer DocumentWriter
	// Cache はRedis有効時のみ非nilです。
	Cache *cache.CachingCompanyRepository

	closers []func(context.Context) error
}

// Close は開いた接続をすべて閉じます。
func (r *Reports) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewReports は設定に従ってストア・キャッシュ・ユースケースを組み立てます。
// Redisに接続できない場合はキャッシュなしで動作します。
func NewReports(ctx context.Context, cfg *config.Config) (*Reports, error) {
	out := &Reports{}

	repo, err := out.openStore(ctx, cfg)
	if err != nil {
		_ = out.Close(ctx)
		return nil, err
	}

	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		if c, err := platformredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = c
			out.closers = append(out.closers, func(context.Context) error { return rdb.Close() })
		}
	}

	repo = out.wrapCache(rdb, cfg.Redis, repo)
	out.Usecase = usecase.NewReportUsecase(repo)
	return out, nil
}

func (r *Reports) openStore(ctx context.Context, cfg *config.Config) (usecase.CompanyRepository, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := platformmongo.NewMongoClient(ctx, cfg.Mongo, cfg.Store.Timeout)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, client.Disconnect)
		r.Check = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		return reportmongo.NewCompanyRepository(platformmongo.Collection(client, cfg.Mongo), cfg.Store.Timeout), nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := platformdb.OpenDB(cfg)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, closeGorm(db))
		r.Check = pingGorm(db)
		repo := reportadapters.NewCompanyRepository(db)
		r.Writer = repo
		return repo, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// wrapCache はRedisが利用可能な場合のみキャッシュデコレーターで包みます。
func (r *Reports) wrapCache(rdb *redisv9.Client, cfg config.RedisConfig, inner usecase.CompanyRepository) usecase.CompanyRepository {
	if rdb == nil {
		return inner
	}
	c := cache.NewCachingCompanyRepository(rdb, cfg.TTL, inner, cfg.Namespace)
	if cfg.RefreshHour >= 0 {
		c.WithDailyRefresh(cfg.RefreshHour, cfg.Location())
	}
	r.Cache = c
	return c
}

func closeGorm(db *gorm.DB) func(context.Context) error {
	return func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}

func pingGorm(db *gorm.DB) platformhandler.StoreCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
