package usecase

import (
	"fmt"

	"nexora_backend/internal/feature/reports/domain/entity"
	"nexora_backend/internal/feature/reports/projection"
)

// View はレポートビューの識別子です。値はAPIパス（/api/以下）と一致します。
type View string

const (
	ViewNTP            View = "ntp"
	ViewTechnographics View = "technographics"
	ViewFinancialWide  View = "financial/wide"
	ViewFinancialLong  View = "financial/long"
	ViewGrowth         View = "growth"
	ViewBuyerGroups    View = "buyergroups"
	ViewMutualFunds    View = "mutualfunds"
)

// viewDef はビューごとの取得フィールドと射影関数の組です。
type viewDef struct {
	fields  []string
	project func([]entity.Company) (rows any, count int)
}

// rowsOf は型付きの射影関数をviewDef用に包みます。
func rowsOf[T any](f func([]entity.Company) []T) func([]entity.Company) (any, int) {
	return func(cs []entity.Company) (any, int) {
		rows := f(cs)
		return rows, len(rows)
	}
}

var financialFields = []string{
	entity.FieldCompanyName, entity.FieldFirmographics, entity.FieldFinancialData, entity.FieldStockPerformance,
}

// views は各ビューが必要とする最小限のフィールドを定義します。
var views = map[View]viewDef{
	ViewNTP: {
		fields:  []string{entity.FieldCompanyName, entity.FieldNTP, entity.FieldFirmographics, entity.FieldTechnographics},
		project: rowsOf(projection.ProjectNTP),
	},
	ViewTechnographics: {
		fields:  []string{entity.FieldCompanyName, entity.FieldFirmographics, entity.FieldTechnographics},
		project: rowsOf(projection.ProjectTechnographics),
	},
	ViewFinancialWide: {
		fields:  financialFields,
		project: rowsOf(projection.ProjectFinancialWide),
	},
	ViewFinancialLong: {
		fields:  financialFields,
		project: rowsOf(projection.ProjectFinancialLong),
	},
	ViewGrowth: {
		fields:  []string{entity.FieldCompanyName, entity.FieldFirmographics, entity.FieldGrowth, entity.FieldFinancialData},
		project: rowsOf(projection.ProjectGrowth),
	},
	ViewBuyerGroups: {
		fields:  []string{entity.FieldCompanyName, entity.FieldFirmographics, entity.FieldBuyersGroup, entity.FieldFinancialData},
		project: rowsOf(projection.ProjectBuyerGroups),
	},
	ViewMutualFunds: {
		fields:  []string{entity.FieldCompanyName, entity.FieldFirmographics, entity.FieldMutualFundHolders, entity.FieldFinancialData},
		project: rowsOf(projection.ProjectMutualFunds),
	},
}

// Views は全ビューをAPIの掲載順で返します。
func Views() []View {
	return []View{
		ViewNTP, ViewTechnographics, ViewFinancialWide, ViewFinancialLong,
		ViewGrowth, ViewBuyerGroups, ViewMutualFunds,
	}
}

// ParseView は文字列をViewに変換します。未知の値はErrUnknownViewを返します。
func ParseView(s string) (View, error) {
	v := View(s)
	if _, ok := views[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
	return v, nil
}

// Fields はビューの取得に必要な保存フィールド名を返します。
func (v View) Fields() []string {
	def, ok := views[v]
	if !ok {
		return nil
	}
	out := make([]string, len(def.fields))
	copy(out, def.fields)
	return out
}

func (v View) String() string { return string(v) }
