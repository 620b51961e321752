package di

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexora_backend/internal/feature/reports/usecase"
	"nexora_backend/internal/platform/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Store:  config.StoreConfig{Driver: config.DriverSQLite, Timeout: time.Second, Migrate: true},
		SQLite: config.SQLiteConfig{Path: t.TempDir() + "/nexora.db"},
	}
}

// TestNewReports_SQLite はSQLiteミラーで組み立て、投入したドキュメントがビューに出ることを検証します。
func TestNewReports_SQLite(t *testing.T) {
	ctx := context.Background()

	r, err := NewReports(ctx, sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(ctx) })

	require.NotNil(t, r.Writer)
	assert.Nil(t, r.Cache, "cache is disabled by default")
	require.NoError(t, r.Check(ctx))

	err = r.Writer.SaveDocuments(ctx, [][]byte{
		[]byte(`{"Company Name": "Acme", "Growth": [{"Period": "1Y", "Growth": 0.1}]}`),
	})
	require.NoError(t, err)

	report, err := r.Usecase.Rows(ctx, usecase.ViewGrowth)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count)
}

func TestNewReports_UnsupportedDriver(t *testing.T) {
	_, err := NewReports(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "mysql"}})
	assert.Error(t, err)
}

// TestWrapCache はRedisクライアントの有無でデコレーターの適用が切り替わることを検証します。
func TestWrapCache(t *testing.T) {
	t.Parallel()

	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cfg := config.RedisConfig{TTL: time.Minute, Namespace: "companies", RefreshHour: 8, Timezone: "UTC"}

	r := &Reports{}
	got := r.wrapCache(nil, cfg, nil)
	assert.Nil(t, got)
	assert.Nil(t, r.Cache)

	got = r.wrapCache(rdb, cfg, nil)
	assert.NotNil(t, got)
	assert.Same(t, r.Cache, got)
}
