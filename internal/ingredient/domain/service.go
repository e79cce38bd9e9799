package domain

import (
	"context"
	"errors"

	"github.com/foodledger/foodledger/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Ingredient, error)
	Update(ctx context.Context, req UpdateRequest) (*Ingredient, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Ingredient, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

type CreateRequest struct {
	Name     string  `json:"name"`
	Store    string  `json:"store"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Genre    string  `json:"genre"`
}

// UpdateRequest applies partial update semantics: nil fields retain their
// previous values.
type UpdateRequest struct {
	ID       string
	Name     *string  `json:"name"`
	Store    *string  `json:"store"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Price    *float64 `json:"price"`
	Genre    *string  `json:"genre"`
}

type ListRequest struct {
	Name     string
	Store    string
	Genre    string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	OrderBy  string
	Page     pagination.Pagination
}

type ListResponse struct {
	Items    []Ingredient
	PageInfo pagination.PageInfo
}

var (
	ErrNotFound        = errors.New("ingredient_not_found")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidGenre    = errors.New("invalid_genre")
)
