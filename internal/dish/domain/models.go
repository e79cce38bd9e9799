// Package domain contains persistence models for dishes and their
// ingredient links.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Dish composes ingredients into a prepared dish. TotalCost is the sum of
// the used_cost snapshots on its links, maintained inside the same
// transaction that writes the links.
type Dish struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null;index" json:"name"`
	Genre       string       `gorm:"type:text;not null;default:''" json:"genre"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	TotalCost   float64      `gorm:"column:total_cost;not null;default:0" json:"total_cost"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Dish) TableName() string { return "dishes" }

// DishIngredient links a dish to an ingredient it uses. UsedCost snapshots
// ingredient.unit_price * used_quantity at link-creation time and is never
// re-derived when the ingredient's price changes afterwards.
type DishIngredient struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	DishID       snowflake.ID `gorm:"column:dish_id;not null;index" json:"dish_id"`
	IngredientID snowflake.ID `gorm:"column:ingredient_id;not null;index" json:"ingredient_id"`
	UsedQuantity float64      `gorm:"column:used_quantity;not null" json:"used_quantity"`
	UsedCost     float64      `gorm:"column:used_cost;not null" json:"used_cost"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (DishIngredient) TableName() string { return "dish_ingredients" }
