package adapters

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nexora_backend/internal/feature/reports/adapters/document"
	"nexora_backend/internal/feature/reports/domain/entity"
	"nexora_backend/internal/feature/reports/usecase"
)

type companyGorm struct {
	db *gorm.DB
}

var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyRepository はリレーショナルDB上のドキュメントミラーを読むCompanyRepositoryを生成します。
func NewCompanyRepository(db *gorm.DB) *companyGorm {
	return &companyGorm{db: db}
}

// CompanyDocumentModel は企業ドキュメント1件をextended JSONのまま保持する行です。
// IDの昇順がMongoDBの自然順に相当します。
type CompanyDocumentModel struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;not null;uniqueIndex"`
	Document string `gorm:"type:text;not null"`
}

func (CompanyDocumentModel) TableName() string {
	return "company_documents"
}

// FindAll は全行をID順に読み、fieldsに含まれる最上位フィールドのみをデコードします。
// 保存内容がJSONとして壊れている行はエラーとして扱います。
func (r *companyGorm) FindAll(ctx context.Context, fields []string) ([]entity.Company, error) {
	var rows []CompanyDocumentModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select company documents: %w", err)
	}

	out := make([]entity.Company, 0, len(rows))
	for _, m := range rows {
		c, err := document.DecodeExtJSON([]byte(m.Document), fields...)
		if err != nil {
			return nil, fmt.Errorf("company document %d: %w", m.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// SaveDocuments はextended JSONのドキュメント群を企業名をキーにupsertします。
// 同じ企業名が複数含まれる場合は後のものが優先されます。
func (r *companyGorm) SaveDocuments(ctx context.Context, docs [][]byte) error {
	if len(docs) == 0 {
		return nil
	}

	index := make(map[string]int, len(docs))
	ms := make([]CompanyDocumentModel, 0, len(docs))
	for i, d := range docs {
		c, err := document.DecodeExtJSON(d, entity.FieldCompanyName)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("document %d: missing %q", i, entity.FieldCompanyName)
		}
		if j, ok := index[name]; ok {
			ms[j].Document = string(d)
			continue
		}
		index[name] = len(ms)
		ms = append(ms, CompanyDocumentModel{Name: name, Document: string(d)})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document"}),
	}).Create(&ms).Error
}
