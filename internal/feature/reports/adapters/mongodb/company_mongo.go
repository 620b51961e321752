// Package mongodb はMongoDBコレクションに保存された企業ドキュメントの読み取りを提供します。
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"nexora_backend/internal/feature/reports/adapters/document"
	"nexora_backend/internal/feature/reports/domain/entity"
	"nexora_backend/internal/feature/reports/usecase"
)

type companyMongo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ usecase.CompanyRepository = (*companyMongo)(nil)

// NewCompanyRepository はコレクションを読み取るCompanyRepositoryを生成します。
// timeoutが0以下の場合、呼び出し元のcontext以外に期限を設けません。
func NewCompanyRepository(coll *mongo.Collection, timeout time.Duration) *companyMongo {
	return &companyMongo{coll: coll, timeout: timeout}
}

// FindAll は全ドキュメントを自然順で取得し、1件ずつデコードします。
func (r *companyMongo) FindAll(ctx context.Context, fields []string) ([]entity.Company, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	opts := options.Find()
	if p := Projection(fields); p != nil {
		opts.SetProjection(p)
	}

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]entity.Company, 0)
	for cur.Next(ctx) {
		out = append(out, document.Decode(cur.Current, fields...))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return out, nil
}

// Projection は指定フィールドのみを含み_idを除外する射影を組み立てます。
// fieldsが空の場合はnil（全フィールド）を返します。
func Projection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}
	p := bson.D{{Key: "_id", Value: 0}}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok || f == "" {
			continue
		}
		seen[f] = struct{}{}
		p = append(p, bson.E{Key: f, Value: 1})
	}
	return p
}
