// Package repository provides a generic gorm-backed store parameterized over
// the entity type. Each entity supplies its table mapping through gorm struct
// tags and a TableName method; no reflection-heavy hydration beyond gorm's own.
package repository

import (
	"context"

	"github.com/foodledger/foodledger/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is the shared persistence contract for a single entity type.
type Repository[T any] interface {
	// WithTrx returns a view of the repository bound to the given transaction.
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	// FindOne returns (nil, nil) when no row matches.
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID int64, resource any) error
	Delete(ctx context.Context, resourceID int64) error
	Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
