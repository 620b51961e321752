package usecase

import (
	"context"
	"fmt"

	"nexora_backend/internal/feature/reports/domain/entity"
)

// CompanyRepository は企業ドキュメントの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyRepository interface {
	// FindAll は全企業を保存順で返します。fieldsが空でなければ、その最上位フィールドのみを取得します。
	FindAll(ctx context.Context, fields []string) ([]entity.Company, error)
}

// Report は1ビュー分の射影結果です。
type Report struct {
	View  View
	Rows  any // 射影関数が返す行スライス（空でもnilではない）
	Count int
}

// ReportUsecase はレポートビューの取得と射影を行います。
type ReportUsecase struct {
	repo CompanyRepository
}

// NewReportUsecase はReportUsecaseの新しいインスタンスを生成します。
func NewReportUsecase(repo CompanyRepository) *ReportUsecase {
	return &ReportUsecase{repo: repo}
}

// Rows は指定ビューに必要なフィールドだけを取得し、行へ射影して返します。
// 取得に失敗した場合は部分的な結果を返さず、ErrRetrievalでラップしたエラーを返します。
func (u *ReportUsecase) Rows(ctx context.Context, view View) (Report, error) {
	def, ok := views[view]
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownView, string(view))
	}

	companies, err := u.repo.FindAll(ctx, view.Fields())
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	rows, n := def.project(companies)
	return Report{View: view, Rows: rows, Count: n}, nil
}
