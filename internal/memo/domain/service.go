package domain

import (
	"context"
	"errors"

	"github.com/foodledger/foodledger/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Memo, error)
	Update(ctx context.Context, req UpdateRequest) (*Memo, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Memo, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateRequest struct {
	ID      string
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ListRequest struct {
	Title   string
	SortBy  string
	OrderBy string
	Page    pagination.Pagination
}

type ListResponse struct {
	Items    []Memo
	PageInfo pagination.PageInfo
}

var (
	ErrNotFound     = errors.New("memo_not_found")
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidTitle = errors.New("invalid_title")
)
