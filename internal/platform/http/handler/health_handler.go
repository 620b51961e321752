// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreCheck はストアへの疎通確認関数です。nilの場合は確認を行いません。
type StoreCheck func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントのハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(check StoreCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status, body := http.StatusOK, gin.H{"status": "ok"}
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				status, body = http.StatusServiceUnavailable, gin.H{"status": "unavailable"}
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	}
}
