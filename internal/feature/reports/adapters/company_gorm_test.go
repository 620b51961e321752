package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nexora_backend/internal/feature/reports/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: はコネクションごとに別DBになるため1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&CompanyDocumentModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedDocument creates a raw company document row for testing.
func seedDocument(t *testing.T, db *gorm.DB, name, doc string) {
	t.Helper()

	err := db.Create(&CompanyDocumentModel{Name: name, Document: doc}).Error
	require.NoError(t, err, "failed to seed document")
}

const acmeDoc = `{
	"Company Name": "Acme",
	"Firmographics": [{"About": {"Name": "Acme", "Domain": "acme.com"}, "Location": {"Country": "US"}}],
	"Growth": [{"Period": "1Y", "End Date": "2023-12-31", "Growth": 0.1234}],
	"Financial_Data": {"Finance": {"Id": "ACME"}}
}`

const globexDoc = `{
	"Company Name": "Globex",
	"Technographics": [{"Keyword": "CRM", "Category": "Sales"}],
	"Growth": [{"Period": "5Y", "Growth": {"$numberDouble": "0.5"}}]
}`

func TestNewCompanyRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewCompanyRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestCompanyGorm_FindAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T, db *gorm.DB)
		fields    []string
		wantErr   bool
		validate  func(t *testing.T, got []entity.Company)
	}{
		{
			name:      "success: empty table",
			setupFunc: func(t *testing.T, db *gorm.DB) {},
			validate: func(t *testing.T, got []entity.Company) {
				assert.NotNil(t, got)
				assert.Empty(t, got)
			},
		},
		{
			name: "success: rows are returned in insertion order",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedDocument(t, db, "Acme", acmeDoc)
				seedDocument(t, db, "Globex", globexDoc)
			},
			validate: func(t *testing.T, got []entity.Company) {
				require.Len(t, got, 2)
				assert.Equal(t, "Acme", got[0].Name)
				assert.Equal(t, "Globex", got[1].Name)
				require.Len(t, got[0].Growth, 1)
				require.NotNil(t, got[0].Growth[0].Ratio)
				assert.InDelta(t, 0.1234, *got[0].Growth[0].Ratio, 1e-9)
				require.Len(t, got[1].Growth, 1)
				require.NotNil(t, got[1].Growth[0].Ratio)
				assert.InDelta(t, 0.5, *got[1].Growth[0].Ratio, 1e-9)
			},
		},
		{
			name: "success: fields outside the projection are dropped",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedDocument(t, db, "Globex", globexDoc)
			},
			fields: []string{entity.FieldCompanyName, entity.FieldGrowth},
			validate: func(t *testing.T, got []entity.Company) {
				require.Len(t, got, 1)
				assert.Len(t, got[0].Growth, 1)
				assert.Nil(t, got[0].Technographics)
			},
		},
		{
			name: "error: corrupt stored document",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedDocument(t, db, "Broken", `{"Company Name": `)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			tt.setupFunc(t, db)
			repo := NewCompanyRepository(db)

			got, err := repo.FindAll(context.Background(), tt.fields)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			tt.validate(t, got)
		})
	}
}

func TestCompanyGorm_SaveDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		docs     []string
		wantErr  bool
		validate func(t *testing.T, db *gorm.DB)
	}{
		{
			name: "success: insert documents",
			docs: []string{acmeDoc, globexDoc},
			validate: func(t *testing.T, db *gorm.DB) {
				var rows []CompanyDocumentModel
				require.NoError(t, db.Order("id").Find(&rows).Error)
				require.Len(t, rows, 2)
				assert.Equal(t, "Acme", rows[0].Name)
				assert.Equal(t, "Globex", rows[1].Name)
			},
		},
		{
			name: "success: duplicate names keep the last document",
			docs: []string{
				`{"Company Name": "Acme", "Growth": []}`,
				`{"Company Name": "Acme", "Growth": [{"Period": "1Y"}]}`,
			},
			validate: func(t *testing.T, db *gorm.DB) {
				var rows []CompanyDocumentModel
				require.NoError(t, db.Find(&rows).Error)
				require.Len(t, rows, 1)
				assert.Contains(t, rows[0].Document, `"Period"`)
			},
		},
		{
			name:    "success: empty input",
			docs:    nil,
			wantErr: false,
			validate: func(t *testing.T, db *gorm.DB) {
				var n int64
				require.NoError(t, db.Model(&CompanyDocumentModel{}).Count(&n).Error)
				assert.Zero(t, n)
			},
		},
		{
			name:    "error: document without a company name",
			docs:    []string{`{"Growth": []}`},
			wantErr: true,
		},
		{
			name:    "error: invalid JSON",
			docs:    []string{`not json`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewCompanyRepository(db)

			docs := make([][]byte, 0, len(tt.docs))
			for _, d := range tt.docs {
				docs = append(docs, []byte(d))
			}
			err := repo.SaveDocuments(context.Background(), docs)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, db)
		})
	}
}

// TestCompanyGorm_SaveDocuments_Upsert は既存の企業名が上書きされ、順序が保たれることを検証します。
func TestCompanyGorm_SaveDocuments_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveDocuments(ctx, [][]byte{[]byte(acmeDoc), []byte(globexDoc)}))
	require.NoError(t, repo.SaveDocuments(ctx, [][]byte{[]byte(`{"Company Name": "Acme", "Growth": []}`)}))

	got, err := repo.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Name)
	assert.Empty(t, got[0].Growth)
	assert.Equal(t, "Globex", got[1].Name)
}
