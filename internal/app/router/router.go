package router

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	reporthandler "nexora_backend/internal/feature/reports/transport/handler"
	"nexora_backend/internal/feature/reports/usecase"
	"nexora_backend/internal/platform/http/middleware"
)

// NewRouter はレポートAPIのルーティングを構築します。
// health は /healthz のハンドラー、origins はCORSで許可するオリジン（"*"で全許可）です。
func NewRouter(reports *reporthandler.ReportHandler, health gin.HandlerFunc, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsConfig(origins)))

	// 導通確認用
	r.GET("/", reporthandler.Root)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// レポートビュー（読み取り専用、クエリパラメータなし）
	api := r.Group("/api")
	{
		api.GET("/ntp", reports.View(usecase.ViewNTP))
		api.GET("/technographics", reports.View(usecase.ViewTechnographics))
		api.GET("/financial/wide", reports.View(usecase.ViewFinancialWide))
		api.GET("/financial/long", reports.View(usecase.ViewFinancialLong))
		api.GET("/growth", reports.View(usecase.ViewGrowth))
		api.GET("/buyergroups", reports.View(usecase.ViewBuyerGroups))
		api.GET("/mutualfunds", reports.View(usecase.ViewMutualFunds))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
