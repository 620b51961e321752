// Package handler はreportsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"nexora_backend/internal/feature/reports/transport/http/dto"
	"nexora_backend/internal/feature/reports/usecase"
)

// ReportUsecase はレポート取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ReportUsecase interface {
	Rows(ctx context.Context, view usecase.View) (usecase.Report, error)
}

// ReportHandler はレポートビューのHTTPリクエストを処理します。
type ReportHandler struct {
	uc ReportUsecase
}

// NewReportHandler は指定されたusecaseでReportHandlerの新しいインスタンスを生成します。
func NewReportHandler(uc ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// View は指定ビューの行一覧をJSON配列で返すハンドラーを生成します。
// クエリパラメータは受け付けず、ページングもありません。
//
// エンドポイント例:
// GET /api/ntp
func (h *ReportHandler) View(view usecase.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := h.uc.Rows(c.Request.Context(), view)
		if err != nil {
			status, body := errorResponse(err)
			slog.Error("report request failed", "view", view.String(), "kind", body.Kind, "error", err)
			c.JSON(status, body)
			return
		}
		slog.Debug("report served", "view", view.String(), "rows", report.Count)
		c.JSON(http.StatusOK, report.Rows)
	}
}

// errorResponse はエラーを構造化レスポンスに変換します。内部エラーの詳細はログにのみ出力します。
func errorResponse(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, usecase.ErrUnknownView):
		return http.StatusNotFound, dto.ErrorResponse{Kind: dto.KindUnknownView, Message: "unknown report view"}
	case errors.Is(err, usecase.ErrRetrieval):
		return http.StatusInternalServerError, dto.ErrorResponse{Kind: dto.KindRetrievalFailure, Message: usecase.ErrRetrieval.Error()}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Kind: dto.KindInternal, Message: "internal server error"}
	}
}

// Root は導通確認用のバナーを返します。
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}
