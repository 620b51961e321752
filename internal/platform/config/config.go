// Package config loads runtime configuration from an optional config file and
// NEXORA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // コンテナにzoneinfoが無い場合のため

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	HTTP     HTTPConfig
	Log      LogConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr             string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// StoreConfig selects the company document store.
type StoreConfig struct {
	Driver  string // mongo, postgres, sqlite
	Timeout time.Duration
	Migrate bool
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// PostgresConfig holds the relational mirror settings for PostgreSQL.
type PostgresConfig struct {
	DSN string
}

// SQLiteConfig holds the relational mirror settings for SQLite.
type SQLiteConfig struct {
	Path string
}

// RedisConfig holds the cache settings.
type RedisConfig struct {
	Enabled     bool
	Addr        string
	Password    string
	DB          int
	TTL         time.Duration
	Namespace   string
	RefreshHour int // -1 disables the daily refresh cap
	Timezone    string
}

// Load reads configuration from config.yaml (if present) and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/nexora")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("NEXORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("redis.refresh_hour", -1)

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:             v.GetString("http.addr"),
			CORSAllowOrigins: splitList(v.GetStringSlice("http.cors_allow_origins")),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(v.GetString("store.driver")),
			Timeout: v.GetDuration("store.timeout"),
			Migrate: v.GetBool("store.migrate"),
		},
		Mongo: MongoConfig{
			URI:        v.GetString("mongo.uri"),
			Database:   v.GetString("mongo.database"),
			Collection: v.GetString("mongo.collection"),
		},
		Postgres: PostgresConfig{
			DSN: v.GetString("postgres.dsn"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("sqlite.path"),
		},
		Redis: RedisConfig{
			Enabled:     v.GetBool("redis.enabled"),
			Addr:        v.GetString("redis.addr"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			TTL:         v.GetDuration("redis.ttl"),
			Namespace:   v.GetString("redis.namespace"),
			RefreshHour: v.GetInt("redis.refresh_hour"),
			Timezone:    v.GetString("redis.timezone"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		// PaaSが渡すPORTを尊重する
		if port := os.Getenv("PORT"); port != "" {
			cfg.HTTP.Addr = ":" + port
		} else {
			cfg.HTTP.Addr = ":5000"
		}
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverMongo
	}
	if cfg.Store.Timeout == 0 {
		cfg.Store.Timeout = 30 * time.Second
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "nexora"
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = "data"
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = "nexora.db"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 5 * time.Minute
	}
	if cfg.Redis.Namespace == "" {
		cfg.Redis.Namespace = "companies"
	}
	if cfg.Redis.Timezone == "" {
		cfg.Redis.Timezone = "UTC"
	}
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverSQLite:
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required when store.driver is postgres")
		}
	default:
		return fmt.Errorf("unsupported store.driver %q (want mongo, postgres or sqlite)", c.Store.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log.level %q", c.Log.Level)
	}
	if c.Store.Timeout < 0 {
		return errors.New("store.timeout must not be negative")
	}
	if c.Redis.RefreshHour < -1 || c.Redis.RefreshHour > 23 {
		return fmt.Errorf("redis.refresh_hour must be between 0 and 23 (or -1), got %d", c.Redis.RefreshHour)
	}
	if _, err := time.LoadLocation(c.Redis.Timezone); err != nil {
		return fmt.Errorf("redis.timezone: %w", err)
	}
	return nil
}

// Location returns the timezone used for the daily cache refresh.
func (c RedisConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// splitList accepts both list values from the config file and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
