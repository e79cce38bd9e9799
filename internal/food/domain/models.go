// Package domain contains persistence models for completed foods (sellable
// menu items) and their dish links.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// UsageUnit describes how a dish quantity on a food is meant to be read.
// Both units apply the same multiplication when costing; the unit is stored
// for display and interpretation only.
type UsageUnit string

const (
	UsageUnitRatio   UsageUnit = "ratio"
	UsageUnitServing UsageUnit = "serving"
)

// Valid reports whether the usage unit is recognized.
func (u UsageUnit) Valid() bool {
	return u == UsageUnitRatio || u == UsageUnitServing
}

// CompletedFood is a sellable menu item composed of dishes. Price is
// optional; profit figures are derived on read and never stored.
type CompletedFood struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null;index" json:"name"`
	Price       *float64     `gorm:"column:price" json:"price,omitempty"`
	TotalCost   float64      `gorm:"column:total_cost;not null;default:0" json:"total_cost"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (CompletedFood) TableName() string { return "completed_foods" }

// Profit returns price - total_cost, or 0 when no positive price is set.
func (f CompletedFood) Profit() float64 {
	if f.Price == nil || *f.Price <= 0 {
		return 0
	}
	return *f.Price - f.TotalCost
}

// ProfitRate returns profit as a percentage of price, or 0 when no positive
// price is set.
func (f CompletedFood) ProfitRate() float64 {
	if f.Price == nil || *f.Price <= 0 {
		return 0
	}
	return f.Profit() / *f.Price * 100
}

// FoodDish links a completed food to a dish it uses. UsageCost snapshots
// dish.total_cost * usage_quantity at link-creation time.
type FoodDish struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	FoodID        snowflake.ID `gorm:"column:food_id;not null;index" json:"food_id"`
	DishID        snowflake.ID `gorm:"column:dish_id;not null;index" json:"dish_id"`
	UsageQuantity float64      `gorm:"column:usage_quantity;not null" json:"usage_quantity"`
	UsageUnit     UsageUnit    `gorm:"column:usage_unit;type:text;not null;default:'serving'" json:"usage_unit"`
	UsageCost     float64      `gorm:"column:usage_cost;not null" json:"usage_cost"`
	Description   *string      `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (FoodDish) TableName() string { return "food_dishes" }
