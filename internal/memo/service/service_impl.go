package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/memo/domain"
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
	repo  repository.Repository[domain.Memo]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("memo.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Memo](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Memo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	memo := &domain.Memo{
		ID:        s.genID.Generate(),
		Title:     title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Memo, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	memo, err := s.repo.FindOne(ctx, &domain.Memo{ID: id})
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		memo.Title = title
	}
	if req.Content != nil {
		memo.Content = *req.Content
	}

	memo.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(memo).Error; err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	memo, err := s.repo.FindOne(ctx, &domain.Memo{ID: parsed})
	if err != nil {
		return err
	}
	if memo == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, int64(parsed))
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Memo, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	memo, err := s.repo.FindOne(ctx, &domain.Memo{ID: parsed})
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, domain.ErrNotFound
	}
	return memo, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := &domain.Memo{}

	predicate := []option.QueryOption{}
	if req.Title != "" {
		predicate = append(predicate, option.WithContains("title", req.Title))
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
			"title":      true,
		})),
		option.WithLimitOffset(page.Limit, req.Page.Offset()),
	)

	items, err := s.repo.Find(ctx, filter, opts...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.Memo, 0, len(items))
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

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
