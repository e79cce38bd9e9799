package service

import (
	"context"
	"time"

	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	"github.com/foodledger/foodledger/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("report.service"),
	}
}

func (s *Service) IngredientGenreStats(ctx context.Context) ([]domain.GenreStat, error) {
	var rows []domain.GenreStat
	err := s.db.WithContext(ctx).Raw(
		`SELECT genre,
		        COUNT(*) AS cnt,
		        AVG(price) AS avg_value,
		        MIN(price) AS min_value,
		        MAX(price) AS max_value
		 FROM ingredients
		 GROUP BY genre
		 ORDER BY cnt DESC, genre ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) DishGenreStats(ctx context.Context) ([]domain.GenreStat, error) {
	var rows []domain.GenreStat
	err := s.db.WithContext(ctx).Raw(
		`SELECT genre,
		        COUNT(*) AS cnt,
		        AVG(total_cost) AS avg_value,
		        MIN(total_cost) AS min_value,
		        MAX(total_cost) AS max_value
		 FROM dishes
		 GROUP BY genre
		 ORDER BY cnt DESC, genre ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) IngredientPopularity(ctx context.Context, limit int) ([]domain.PopularityRow, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []domain.PopularityRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT i.id AS ingredient_id,
		        i.name AS name,
		        i.genre AS genre,
		        COUNT(di.id) AS usage_count
		 FROM ingredients i
		 JOIN dish_ingredients di ON di.ingredient_id = i.id
		 GROUP BY i.id, i.name, i.genre
		 ORDER BY usage_count DESC, i.name ASC
		 LIMIT ?`,
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProfitabilityDistribution loads price/total_cost pairs and buckets them by
// profit rate in one pass. Bucketing happens in Go so the thresholds behave
// identically across database dialects.
func (s *Service) ProfitabilityDistribution(ctx context.Context) (domain.ProfitabilityDistribution, error) {
	var foods []fooddomain.CompletedFood
	err := s.db.WithContext(ctx).Raw(
		`SELECT id, price, total_cost FROM completed_foods`,
	).Scan(&foods).Error
	if err != nil {
		return domain.ProfitabilityDistribution{}, err
	}

	var dist domain.ProfitabilityDistribution
	for _, f := range foods {
		if f.Price == nil || *f.Price <= 0 {
			dist.Unset++
			continue
		}
		switch rate := f.ProfitRate(); {
		case rate >= 50:
			dist.Excellent++
		case rate >= 30:
			dist.Good++
		case rate >= 20:
			dist.Fair++
		case rate >= 10:
			dist.Low++
		default:
			dist.Poor++
		}
	}

	return dist, nil
}

func (s *Service) Trends(ctx context.Context, req domain.TrendRequest) (domain.TrendResponse, error) {
	interval := req.Interval
	if interval == "" {
		interval = domain.TrendDaily
	}
	if !interval.Valid() {
		return domain.TrendResponse{}, domain.ErrInvalidInterval
	}

	days := req.Days
	if days <= 0 {
		days = 30
	}
	from := time.Now().UTC().AddDate(0, 0, -days)

	resp := domain.TrendResponse{Interval: interval, From: from}

	for _, rollup := range []struct {
		table string
		out   *[]domain.TrendBucket
	}{
		{"ingredients", &resp.Ingredients},
		{"dishes", &resp.Dishes},
		{"completed_foods", &resp.Foods},
	} {
		buckets, err := s.trendFor(ctx, rollup.table, from, interval)
		if err != nil {
			return domain.TrendResponse{}, err
		}
		*rollup.out = buckets
	}

	return resp, nil
}

// trendFor buckets created_at timestamps in Go rather than with dialect
// specific date functions, keeping postgres, mysql and sqlite in agreement.
func (s *Service) trendFor(ctx context.Context, table string, from time.Time, interval domain.TrendInterval) ([]domain.TrendBucket, error) {
	var stamps []time.Time
	err := s.db.WithContext(ctx).
		Table(table).
		Where("created_at >= ?", from).
		Order("created_at ASC").
		Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int64)
	for _, ts := range stamps {
		counts[bucketStart(ts.UTC(), interval)]++
	}

	buckets := make([]domain.TrendBucket, 0, len(counts))
	for start := bucketStart(from, interval); !start.After(time.Now().UTC()); start = nextBucket(start, interval) {
		buckets = append(buckets, domain.TrendBucket{Start: start, Count: counts[start]})
	}
	return buckets, nil
}

func bucketStart(ts time.Time, interval domain.TrendInterval) time.Time {
	switch interval {
	case domain.TrendWeekly:
		// ISO weeks: buckets start on Monday.
		day := ts.Truncate(24 * time.Hour)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.TrendMonthly:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return ts.Truncate(24 * time.Hour)
	}
}

func nextBucket(start time.Time, interval domain.TrendInterval) time.Time {
	switch interval {
	case domain.TrendWeekly:
		return start.AddDate(0, 0, 7)
	case domain.TrendMonthly:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
