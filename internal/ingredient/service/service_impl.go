package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/ingredient/domain"
	"github.com/foodledger/foodledger/pkg/db/option"
	"github.com/foodledger/foodledger/pkg/db/pagination"
	"github.com/foodledger/foodledger/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Ingredient]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ingredient.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Ingredient](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	genre := domain.Genre(strings.TrimSpace(req.Genre))
	if !genre.Valid() {
		return nil, domain.ErrInvalidGenre
	}

	now := time.Now().UTC()
	item := &domain.Ingredient{
		ID:        s.genID.Generate(),
		Name:      name,
		Store:     strings.TrimSpace(req.Store),
		Quantity:  req.Quantity,
		Unit:      strings.TrimSpace(req.Unit),
		Price:     req.Price,
		UnitPrice: unitPrice(req.Price, req.Quantity),
		Genre:     genre,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.log.Debug("ingredient created", zap.String("id", item.ID.String()), zap.String("name", item.Name))
	return item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Ingredient, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Ingredient{ID: id})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Store != nil {
		item.Store = strings.TrimSpace(*req.Store)
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Genre != nil {
		genre := domain.Genre(strings.TrimSpace(*req.Genre))
		if !genre.Valid() {
			return nil, domain.ErrInvalidGenre
		}
		item.Genre = genre
	}

	// unit_price follows price/quantity whenever both are positive; otherwise
	// the stored value is left as-is.
	if item.Price > 0 && item.Quantity > 0 {
		item.UnitPrice = unitPrice(item.Price, item.Quantity)
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the ingredient row. Existing dish_ingredients rows keep
// their snapshotted used_cost; there is deliberately no reference guard here,
// matching the system's historical behavior.
func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Ingredient{ID: parsed})
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, int64(parsed))
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Ingredient{ID: parsed})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := &domain.Ingredient{}
	if genre := domain.Genre(strings.TrimSpace(req.Genre)); genre != "" {
		if !genre.Valid() {
			return domain.ListResponse{}, domain.ErrInvalidGenre
		}
		filter.Genre = genre
	}

	predicate := []option.QueryOption{}
	if req.Name != "" {
		predicate = append(predicate, option.WithContains("name", req.Name))
	}
	if req.Store != "" {
		predicate = append(predicate, option.WithContains("store", req.Store))
	}
	if req.MinPrice != nil {
		predicate = append(predicate, option.ApplyOperator(option.Condition{
			Field:    "price",
			Operator: option.GTE,
			Value:    *req.MinPrice,
		}))
	}
	if req.MaxPrice != nil {
		predicate = append(predicate, option.ApplyOperator(option.Condition{
			Field:    "price",
			Operator: option.LTE,
			Value:    *req.MaxPrice,
		}))
	}

	total, err := s.repo.Count(ctx, filter, predicate...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	page := req.Page.Normalize()
	opts := append(predicate,
		option.WithSortBy(option.WithQuerySortBy(req.SortBy, req.OrderBy, map[string]bool{
			"created_at": true,
			"updated_at": true,
			"name":       true,
			"price":      true,
			"unit_price": true,
			"quantity":   true,
		})),
		option.WithLimitOffset(page.Limit, req.Page.Offset()),
	)

	items, err := s.repo.Find(ctx, filter, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.Ingredient, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}

	return domain.ListResponse{
		Items:    out,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}

// unitPrice derives the per-unit cost rounded to the currency's minimal
// precision (2 decimal places).
func unitPrice(price, quantity float64) float64 {
	return math.Round(price/quantity*100) / 100
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
