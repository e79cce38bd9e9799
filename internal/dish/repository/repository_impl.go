package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/dish/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindLines(ctx context.Context, db *gorm.DB, dishID snowflake.ID) ([]domain.LineDetail, error) {
	var lines []domain.LineDetail
	err := db.WithContext(ctx).Raw(
		`SELECT di.ingredient_id,
		        COALESCE(i.name, '') AS ingredient_name,
		        COALESCE(i.unit, '') AS ingredient_unit,
		        COALESCE(i.genre, '') AS ingredient_genre,
		        di.used_quantity,
		        di.used_cost
		 FROM dish_ingredients di
		 LEFT JOIN ingredients i ON i.id = di.ingredient_id
		 WHERE di.dish_id = ?
		 ORDER BY di.created_at ASC, di.id ASC`,
		dishID,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repo) CountFoodRefs(ctx context.Context, db *gorm.DB, dishID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM food_dishes WHERE dish_id = ?`,
		dishID,
	).Scan(&count).Error
	return count, err
}

func (r *repo) DeleteLinks(ctx context.Context, db *gorm.DB, dishID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM dish_ingredients WHERE dish_id = ?`,
		dishID,
	).Error
}
