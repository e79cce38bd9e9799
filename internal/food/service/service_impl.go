package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	"github.com/foodledger/foodledger/internal/food/domain"
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
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository

	foodrepo repository.Repository[domain.CompletedFood]
	linkrepo repository.Repository[domain.FoodDish]
	dishrepo repository.Repository[dishdomain.Dish]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("food.service"),
		genID: p.GenID,
		repo:  p.Repo,

		foodrepo: repository.ProvideStore[domain.CompletedFood](p.DB),
		linkrepo: repository.ProvideStore[domain.FoodDish](p.DB),
		dishrepo: repository.ProvideStore[dishdomain.Dish](p.DB),
	}
}

// CreateWithDishes persists the food shell and its dish links in one
// transaction. usage_cost snapshots dish.total_cost * usage_quantity with
// the same multiplication for both usage units; a missing dish id rolls the
// whole write back.
func (s *Service) CreateWithDishes(ctx context.Context, req domain.CreateRequest) (*domain.Detail, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	lines, err := parseLines(req.Dishes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	food := &domain.CompletedFood{
		ID:          s.genID.Generate(),
		Name:        name,
		Price:       req.Price,
		TotalCost:   0,
		Description: trimPtr(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.foodrepo.WithTrx(tx).Create(ctx, food); err != nil {
			return err
		}

		total, links, err := s.buildLinks(ctx, tx, food.ID, lines, now)
		if err != nil {
			return err
		}
		if err := s.linkrepo.WithTrx(tx).BatchCreate(ctx, links); err != nil {
			return err
		}

		food.TotalCost = total
		return s.foodrepo.WithTrx(tx).Update(ctx, int64(food.ID), map[string]any{
			"total_cost": total,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("completed food created", zap.String("id", food.ID.String()), zap.Float64("total_cost", food.TotalCost))
	return s.detail(ctx, food)
}

// UpdateWithDishes updates the supplied fields; when a non-empty dish list
// is given the existing links are replaced and total_cost is recomputed,
// otherwise links and cost stay untouched.
func (s *Service) UpdateWithDishes(ctx context.Context, req domain.UpdateRequest) (*domain.Detail, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	food, err := s.foodrepo.FindOne(ctx, &domain.CompletedFood{ID: id})
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		food.Name = name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		food.Price = req.Price
	}
	if req.Description != nil {
		food.Description = trimPtr(req.Description)
	}

	var lines []domain.DishLine
	if len(req.Dishes) > 0 {
		lines, err = parseLines(req.Dishes)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	food.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(lines) > 0 {
			if err := s.repo.DeleteLinks(ctx, tx, food.ID); err != nil {
				return err
			}
			total, links, err := s.buildLinks(ctx, tx, food.ID, lines, now)
			if err != nil {
				return err
			}
			if err := s.linkrepo.WithTrx(tx).BatchCreate(ctx, links); err != nil {
				return err
			}
			food.TotalCost = total
		}

		return tx.WithContext(ctx).Save(food).Error
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, food)
}

// Delete removes the food and its links atomically. Nothing references
// completed foods, so no conflict check is needed.
func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	food, err := s.foodrepo.FindOne(ctx, &domain.CompletedFood{ID: parsed})
	if err != nil {
		return err
	}
	if food == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteLinks(ctx, tx, parsed); err != nil {
			return err
		}
		return s.foodrepo.WithTrx(tx).Delete(ctx, int64(parsed))
	})
}

func (s *Service) GetWithDishes(ctx context.Context, id string) (*domain.Detail, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	food, err := s.foodrepo.FindOne(ctx, &domain.CompletedFood{ID: parsed})
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, domain.ErrNotFound
	}

	return s.detail(ctx, food)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := &domain.CompletedFood{}

	predicate := []option.QueryOption{}
	if req.Name != "" {
		predicate = append(predicate, option.WithContains("name", req.Name))
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
	if req.MinTotalCost != nil {
		predicate = append(predicate, option.ApplyOperator(option.Condition{
			Field:    "total_cost",
			Operator: option.GTE,
			Value:    *req.MinTotalCost,
		}))
	}
	if req.MaxTotalCost != nil {
		predicate = append(predicate, option.ApplyOperator(option.Condition{
			Field:    "total_cost",
			Operator: option.LTE,
			Value:    *req.MaxTotalCost,
		}))
	}

	total, err := s.foodrepo.Count(ctx, filter, predicate...)
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
			"total_cost": true,
		})),
		option.WithLimitOffset(page.Limit, req.Page.Offset()),
	)

	items, err := s.foodrepo.Find(ctx, filter, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, domain.Item{
			CompletedFood: *item,
			Profit:        item.Profit(),
			ProfitRate:    item.ProfitRate(),
		})
	}

	return domain.ListResponse{
		Items:    out,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}

// buildLinks resolves each referenced dish inside the transaction and
// computes the snapshot costs from the dish's current total_cost.
func (s *Service) buildLinks(ctx context.Context, tx *gorm.DB, foodID snowflake.ID, lines []domain.DishLine, now time.Time) (float64, []*domain.FoodDish, error) {
	total := 0.0
	links := make([]*domain.FoodDish, 0, len(lines))
	dishes := s.dishrepo.WithTrx(tx)

	for _, line := range lines {
		dishID, err := parseID(line.DishID)
		if err != nil {
			return 0, nil, domain.ErrInvalidDish
		}

		dish, err := dishes.FindOne(ctx, &dishdomain.Dish{ID: dishID})
		if err != nil {
			return 0, nil, err
		}
		if dish == nil {
			return 0, nil, domain.ErrDishNotFound
		}

		usageCost := dish.TotalCost * line.UsageQuantity
		total += usageCost
		links = append(links, &domain.FoodDish{
			ID:            s.genID.Generate(),
			FoodID:        foodID,
			DishID:        dishID,
			UsageQuantity: line.UsageQuantity,
			UsageUnit:     domain.UsageUnit(line.UsageUnit),
			UsageCost:     usageCost,
			Description:   trimPtr(line.Description),
			CreatedAt:     now,
		})
	}

	return total, links, nil
}

func (s *Service) detail(ctx context.Context, food *domain.CompletedFood) (*domain.Detail, error) {
	lines, err := s.repo.FindLines(ctx, s.db, food.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Detail{
		ID:          food.ID,
		Name:        food.Name,
		Price:       food.Price,
		TotalCost:   food.TotalCost,
		Profit:      food.Profit(),
		ProfitRate:  food.ProfitRate(),
		Description: food.Description,
		CreatedAt:   food.CreatedAt,
		UpdatedAt:   food.UpdatedAt,
		Dishes:      lines,
	}, nil
}

func parseLines(in []domain.DishLine) ([]domain.DishLine, error) {
	lines := make([]domain.DishLine, 0, len(in))
	for _, line := range in {
		if strings.TrimSpace(line.DishID) == "" {
			return nil, domain.ErrInvalidDish
		}
		if line.UsageQuantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		unit := domain.UsageUnit(strings.TrimSpace(line.UsageUnit))
		if unit == "" {
			unit = domain.UsageUnitServing
		}
		if !unit.Valid() {
			return nil, domain.ErrInvalidUsageUnit
		}
		line.UsageUnit = string(unit)
		lines = append(lines, line)
	}
	return lines, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
