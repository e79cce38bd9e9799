package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/pkg/db/pagination"
)

type Service interface {
	CreateWithIngredients(ctx context.Context, req CreateRequest) (*Detail, error)
	UpdateWithIngredients(ctx context.Context, req UpdateRequest) (*Detail, error)
	Delete(ctx context.Context, id string) error
	GetWithIngredients(ctx context.Context, id string) (*Detail, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

// IngredientLine is one ingredient reference in a create/update request.
type IngredientLine struct {
	IngredientID string  `json:"ingredient_id"`
	UsedQuantity float64 `json:"used_quantity"`
}

type CreateRequest struct {
	Name        string           `json:"name"`
	Genre       string           `json:"genre"`
	Description *string          `json:"description"`
	Ingredients []IngredientLine `json:"ingredients"`
}

// UpdateRequest applies partial update semantics. An empty or absent
// Ingredients list leaves the existing links and total_cost untouched.
type UpdateRequest struct {
	ID          string
	Name        *string          `json:"name"`
	Genre       *string          `json:"genre"`
	Description *string          `json:"description"`
	Ingredients []IngredientLine `json:"ingredients"`
}

type ListRequest struct {
	Name         string
	Genre        string
	MinTotalCost *float64
	MaxTotalCost *float64
	SortBy       string
	OrderBy      string
	Page         pagination.Pagination
}

type ListResponse struct {
	Items    []Dish
	PageInfo pagination.PageInfo
}

// LineDetail is a dish ingredient link resolved with display fields from the
// ingredients table.
type LineDetail struct {
	IngredientID    snowflake.ID `gorm:"column:ingredient_id" json:"ingredient_id"`
	IngredientName  string       `gorm:"column:ingredient_name" json:"ingredient_name"`
	IngredientUnit  string       `gorm:"column:ingredient_unit" json:"ingredient_unit"`
	IngredientGenre string       `gorm:"column:ingredient_genre" json:"ingredient_genre"`
	UsedQuantity    float64      `gorm:"column:used_quantity" json:"used_quantity"`
	UsedCost        float64      `gorm:"column:used_cost" json:"used_cost"`
}

// Detail is a dish plus its resolved ingredient lines.
type Detail struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	Genre       string       `json:"genre"`
	Description *string      `json:"description,omitempty"`
	TotalCost   float64      `json:"total_cost"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Ingredients []LineDetail `json:"ingredients"`
}

var (
	ErrNotFound           = errors.New("dish_not_found")
	ErrIngredientNotFound = errors.New("dish_ingredient_not_found")
	ErrReferenced         = errors.New("dish_referenced")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidQuantity    = errors.New("invalid_used_quantity")
	ErrInvalidIngredient  = errors.New("invalid_ingredient_id")
)
