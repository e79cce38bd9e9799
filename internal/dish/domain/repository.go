package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository covers the dish queries that need joins or raw predicates
// beyond the generic store.
type Repository interface {
	// FindLines returns the dish's links joined with ingredient display fields.
	FindLines(ctx context.Context, db *gorm.DB, dishID snowflake.ID) ([]LineDetail, error)
	// CountFoodRefs counts food_dishes rows referencing the dish.
	CountFoodRefs(ctx context.Context, db *gorm.DB, dishID snowflake.ID) (int64, error)
	// DeleteLinks removes all dish_ingredients rows owned by the dish.
	DeleteLinks(ctx context.Context, db *gorm.DB, dishID snowflake.ID) error
}
