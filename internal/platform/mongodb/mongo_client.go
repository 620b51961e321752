// Package mongodb はMongoDBクライアントの生成と接続確認を提供します。
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"nexora_backend/internal/platform/config"
)

// NewMongoClient は設定のURIで接続し、Primaryへのpingで疎通を確認します。
func NewMongoClient(ctx context.Context, cfg config.MongoConfig, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if timeout > 0 {
		opts.SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		slog.Error("MongoDB connection failed", "database", cfg.Database, "error", err)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	slog.Info("MongoDB connection successful", "database", cfg.Database, "collection", cfg.Collection)
	return client, nil
}

// Collection は設定のデータベース・コレクションを返します。
func Collection(client *mongo.Client, cfg config.MongoConfig) *mongo.Collection {
	return client.Database(cfg.Database).Collection(cfg.Collection)
}
