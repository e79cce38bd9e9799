package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository covers the completed-food queries that need joins beyond the
// generic store.
type Repository interface {
	// FindLines returns the food's links joined with dish display fields.
	FindLines(ctx context.Context, db *gorm.DB, foodID snowflake.ID) ([]LineDetail, error)
	// DeleteLinks removes all food_dishes rows owned by the food.
	DeleteLinks(ctx context.Context, db *gorm.DB, foodID snowflake.ID) error
}
