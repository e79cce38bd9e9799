package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/food/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindLines(ctx context.Context, db *gorm.DB, foodID snowflake.ID) ([]domain.LineDetail, error) {
	var lines []domain.LineDetail
	err := db.WithContext(ctx).Raw(
		`SELECT fd.dish_id,
		        COALESCE(d.name, '') AS dish_name,
		        COALESCE(d.genre, '') AS dish_genre,
		        fd.usage_quantity,
		        fd.usage_unit,
		        fd.usage_cost,
		        fd.description
		 FROM food_dishes fd
		 LEFT JOIN dishes d ON d.id = fd.dish_id
		 WHERE fd.food_id = ?
		 ORDER BY fd.created_at ASC, fd.id ASC`,
		foodID,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repo) DeleteLinks(ctx context.Context, db *gorm.DB, foodID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM food_dishes WHERE food_id = ?`,
		foodID,
	).Error
}
