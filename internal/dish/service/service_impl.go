package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/dish/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
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

	dishrepo       repository.Repository[domain.Dish]
	linkrepo       repository.Repository[domain.DishIngredient]
	ingredientrepo repository.Repository[ingredientdomain.Ingredient]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("dish.service"),
		genID: p.GenID,
		repo:  p.Repo,

		dishrepo:       repository.ProvideStore[domain.Dish](p.DB),
		linkrepo:       repository.ProvideStore[domain.DishIngredient](p.DB),
		ingredientrepo: repository.ProvideStore[ingredientdomain.Ingredient](p.DB),
	}
}

// CreateWithIngredients persists the dish shell and its ingredient links in
// one transaction. Each link snapshots used_cost from the ingredient's
// current unit_price; a missing ingredient id rolls the whole write back.
func (s *Service) CreateWithIngredients(ctx context.Context, req domain.CreateRequest) (*domain.Detail, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	lines, err := parseLines(req.Ingredients)
	if err != nil {
		return nil, err
	}

	description := trimPtr(req.Description)
	now := time.Now().UTC()
	dish := &domain.Dish{
		ID:          s.genID.Generate(),
		Name:        name,
		Genre:       strings.TrimSpace(req.Genre),
		Description: description,
		TotalCost:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.dishrepo.WithTrx(tx).Create(ctx, dish); err != nil {
			return err
		}

		total, links, err := s.buildLinks(ctx, tx, dish.ID, lines, now)
		if err != nil {
			return err
		}
		if err := s.linkrepo.WithTrx(tx).BatchCreate(ctx, links); err != nil {
			return err
		}

		dish.TotalCost = total
		return s.dishrepo.WithTrx(tx).Update(ctx, int64(dish.ID), map[string]any{
			"total_cost": total,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("dish created", zap.String("id", dish.ID.String()), zap.Float64("total_cost", dish.TotalCost))
	return s.detail(ctx, dish)
}

// UpdateWithIngredients updates the supplied fields; when a non-empty
// ingredient list is given the existing links are replaced and total_cost is
// recomputed, otherwise links and cost stay untouched.
func (s *Service) UpdateWithIngredients(ctx context.Context, req domain.UpdateRequest) (*domain.Detail, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	dish, err := s.dishrepo.FindOne(ctx, &domain.Dish{ID: id})
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		dish.Name = name
	}
	if req.Genre != nil {
		dish.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.Description != nil {
		dish.Description = trimPtr(req.Description)
	}

	var lines []domain.IngredientLine
	if len(req.Ingredients) > 0 {
		lines, err = parseLines(req.Ingredients)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	dish.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(lines) > 0 {
			if err := s.repo.DeleteLinks(ctx, tx, dish.ID); err != nil {
				return err
			}
			total, links, err := s.buildLinks(ctx, tx, dish.ID, lines, now)
			if err != nil {
				return err
			}
			if err := s.linkrepo.WithTrx(tx).BatchCreate(ctx, links); err != nil {
				return err
			}
			dish.TotalCost = total
		}

		return tx.WithContext(ctx).Save(dish).Error
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, dish)
}

// Delete fails with a conflict while any completed food references the dish;
// otherwise the dish and its links go away atomically.
func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	dish, err := s.dishrepo.FindOne(ctx, &domain.Dish{ID: parsed})
	if err != nil {
		return err
	}
	if dish == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := s.repo.CountFoodRefs(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrReferenced
		}

		if err := s.repo.DeleteLinks(ctx, tx, parsed); err != nil {
			return err
		}
		return s.dishrepo.WithTrx(tx).Delete(ctx, int64(parsed))
	})
}

func (s *Service) GetWithIngredients(ctx context.Context, id string) (*domain.Detail, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	dish, err := s.dishrepo.FindOne(ctx, &domain.Dish{ID: parsed})
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, domain.ErrNotFound
	}

	return s.detail(ctx, dish)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := &domain.Dish{Genre: strings.TrimSpace(req.Genre)}

	predicate := []option.QueryOption{}
	if req.Name != "" {
		predicate = append(predicate, option.WithContains("name", req.Name))
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

	total, err := s.dishrepo.Count(ctx, filter, predicate...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	page := req.Page.Normalize()
	opts := append(predicate,
		option.WithSortBy(option.WithQuerySortBy(req.SortBy, req.OrderBy, map[string]bool{
			"created_at": true,
			"updated_at": true,
			"name":       true,
			"total_cost": true,
		})),
		option.WithLimitOffset(page.Limit, req.Page.Offset()),
	)

	items, err := s.dishrepo.Find(ctx, filter, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.Dish, 0, len(items))
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

// buildLinks resolves each referenced ingredient inside the transaction and
// computes the snapshot costs. Returned total is the sum over all links.
func (s *Service) buildLinks(ctx context.Context, tx *gorm.DB, dishID snowflake.ID, lines []domain.IngredientLine, now time.Time) (float64, []*domain.DishIngredient, error) {
	total := 0.0
	links := make([]*domain.DishIngredient, 0, len(lines))
	ingredients := s.ingredientrepo.WithTrx(tx)

	for _, line := range lines {
		ingredientID, err := parseID(line.IngredientID)
		if err != nil {
			return 0, nil, domain.ErrInvalidIngredient
		}

		ingredient, err := ingredients.FindOne(ctx, &ingredientdomain.Ingredient{ID: ingredientID})
		if err != nil {
			return 0, nil, err
		}
		if ingredient == nil {
			return 0, nil, domain.ErrIngredientNotFound
		}

		usedCost := ingredient.UnitPrice * line.UsedQuantity
		total += usedCost
		links = append(links, &domain.DishIngredient{
			ID:           s.genID.Generate(),
			DishID:       dishID,
			IngredientID: ingredientID,
			UsedQuantity: line.UsedQuantity,
			UsedCost:     usedCost,
			CreatedAt:    now,
		})
	}

	return total, links, nil
}

func (s *Service) detail(ctx context.Context, dish *domain.Dish) (*domain.Detail, error) {
	lines, err := s.repo.FindLines(ctx, s.db, dish.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Detail{
		ID:          dish.ID,
		Name:        dish.Name,
		Genre:       dish.Genre,
		Description: dish.Description,
		TotalCost:   dish.TotalCost,
		CreatedAt:   dish.CreatedAt,
		UpdatedAt:   dish.UpdatedAt,
		Ingredients: lines,
	}, nil
}

func parseLines(in []domain.IngredientLine) ([]domain.IngredientLine, error) {
	lines := make([]domain.IngredientLine, 0, len(in))
	for _, line := range in {
		if strings.TrimSpace(line.IngredientID) == "" {
			return nil, domain.ErrInvalidIngredient
		}
		if line.UsedQuantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
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
