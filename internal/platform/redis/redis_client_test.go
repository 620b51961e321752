package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nexora_backend/internal/platform/config"
)

// TestNewRedisClient_Unreachable は接続できない場合にエラーとnilクライアントが返ることを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})

	assert.Error(t, err)
	assert.Nil(t, rdb)
}
