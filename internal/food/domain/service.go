package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/pkg/db/pagination"
)

type Service interface {
	CreateWithDishes(ctx context.Context, req CreateRequest) (*Detail, error)
	UpdateWithDishes(ctx context.Context, req UpdateRequest) (*Detail, error)
	Delete(ctx context.Context, id string) error
	GetWithDishes(ctx context.Context, id string) (*Detail, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

// DishLine is one dish reference in a create/update request.
type DishLine struct {
	DishID        string  `json:"dish_id"`
	UsageQuantity float64 `json:"usage_quantity"`
	UsageUnit     string  `json:"usage_unit"`
	Description   *string `json:"description"`
}

type CreateRequest struct {
	Name        string     `json:"name"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	Dishes      []DishLine `json:"dishes"`
}

// UpdateRequest applies partial update semantics. An empty or absent Dishes
// list leaves the existing links and total_cost untouched.
type UpdateRequest struct {
	ID          string
	Name        *string    `json:"name"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	Dishes      []DishLine `json:"dishes"`
}

type ListRequest struct {
	Name         string
	MinPrice     *float64
	MaxPrice     *float64
	MinTotalCost *float64
	MaxTotalCost *float64
	SortBy       string
	OrderBy      string
	Page         pagination.Pagination
}

// Item is a completed food with its derived profit figures attached.
type Item struct {
	CompletedFood
	Profit     float64 `json:"profit"`
	ProfitRate float64 `json:"profit_rate"`
}

type ListResponse struct {
	Items    []Item
	PageInfo pagination.PageInfo
}

// LineDetail is a food dish link resolved with display fields from the
// dishes table.
type LineDetail struct {
	DishID        snowflake.ID `gorm:"column:dish_id" json:"dish_id"`
	DishName      string       `gorm:"column:dish_name" json:"dish_name"`
	DishGenre     string       `gorm:"column:dish_genre" json:"dish_genre"`
	UsageQuantity float64      `gorm:"column:usage_quantity" json:"usage_quantity"`
	UsageUnit     UsageUnit    `gorm:"column:usage_unit" json:"usage_unit"`
	UsageCost     float64      `gorm:"column:usage_cost" json:"usage_cost"`
	Description   *string      `gorm:"column:description" json:"description,omitempty"`
}

// Detail is a completed food plus its resolved dish lines.
type Detail struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	Price       *float64     `json:"price,omitempty"`
	TotalCost   float64      `json:"total_cost"`
	Profit      float64      `json:"profit"`
	ProfitRate  float64      `json:"profit_rate"`
	Description *string      `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Dishes      []LineDetail `json:"dishes"`
}

var (
	ErrNotFound         = errors.New("completed_food_not_found")
	ErrDishNotFound     = errors.New("food_dish_not_found")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidQuantity  = errors.New("invalid_usage_quantity")
	ErrInvalidUsageUnit = errors.New("invalid_usage_unit")
	ErrInvalidDish      = errors.New("invalid_dish_id")
	ErrInvalidPrice     = errors.New("invalid_price")
)
