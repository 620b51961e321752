package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"nexora_backend/internal/app/di"
	"nexora_backend/internal/app/router"
	reporthandler "nexora_backend/internal/feature/reports/transport/handler"
	"nexora_backend/internal/platform/config"
	platformhandler "nexora_backend/internal/platform/http/handler"
	"nexora_backend/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if _, err := logger.Setup(os.Stderr, cfg.Log.Level); err != nil {
		slog.Error("failed to set up logger", "error", err)
		os.Exit(1)
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ストア（+キャッシュ）とユースケース
	reports, err := di.NewReports(ctx, cfg)
	if err != nil {
		slog.Error("failed to open company store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := reports.Close(context.Background()); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// Handler
	reportH := reporthandler.NewReportHandler(reports.Usecase)

	// ルータ生成
	r := router.NewRouter(reportH, platformhandler.Health(reports.Check), cfg.HTTP.CORSAllowOrigins)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: r}

	go func() {
		slog.Info("server started", "addr", cfg.HTTP.Addr, "store", cfg.Store.Driver, "cache", reports.Cache != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
