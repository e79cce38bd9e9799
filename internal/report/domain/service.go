// Package domain defines the read-only reporting contracts: genre rollups,
// ingredient popularity, profitability distribution and creation trends.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	IngredientGenreStats(ctx context.Context) ([]GenreStat, error)
	DishGenreStats(ctx context.Context) ([]GenreStat, error)
	IngredientPopularity(ctx context.Context, limit int) ([]PopularityRow, error)
	ProfitabilityDistribution(ctx context.Context) (ProfitabilityDistribution, error)
	Trends(ctx context.Context, req TrendRequest) (TrendResponse, error)
}

// GenreStat aggregates one genre of ingredients (over price) or dishes
// (over total_cost).
type GenreStat struct {
	Genre   string  `gorm:"column:genre" json:"genre"`
	Count   int64   `gorm:"column:cnt" json:"count"`
	Average float64 `gorm:"column:avg_value" json:"average"`
	Min     float64 `gorm:"column:min_value" json:"min"`
	Max     float64 `gorm:"column:max_value" json:"max"`
}

// PopularityRow ranks an ingredient by how many dish links use it.
type PopularityRow struct {
	IngredientID snowflake.ID `gorm:"column:ingredient_id" json:"ingredient_id"`
	Name         string       `gorm:"column:name" json:"name"`
	Genre        string       `gorm:"column:genre" json:"genre"`
	UsageCount   int64        `gorm:"column:usage_count" json:"usage_count"`
}

// ProfitabilityDistribution buckets completed foods by profit rate.
type ProfitabilityDistribution struct {
	Excellent int64 `json:"excellent"` // >= 50%
	Good      int64 `json:"good"`      // 30-50%
	Fair      int64 `json:"fair"`      // 20-30%
	Low       int64 `json:"low"`       // 10-20%
	Poor      int64 `json:"poor"`      // < 10%
	Unset     int64 `json:"unset"`     // no price
}

// TrendInterval selects the bucket width of a trend rollup.
type TrendInterval string

const (
	TrendDaily   TrendInterval = "daily"
	TrendWeekly  TrendInterval = "weekly"
	TrendMonthly TrendInterval = "monthly"
)

// Valid reports whether the interval is recognized.
func (i TrendInterval) Valid() bool {
	return i == TrendDaily || i == TrendWeekly || i == TrendMonthly
}

// TrendRequest asks for creation counts bucketed by Interval over the last
// Days days.
type TrendRequest struct {
	Interval TrendInterval
	Days     int
}

// TrendBucket is one time bucket of a trend rollup.
type TrendBucket struct {
	Start time.Time `json:"start"`
	Count int64     `json:"count"`
}

type TrendResponse struct {
	Interval    TrendInterval `json:"interval"`
	From        time.Time     `json:"from"`
	Ingredients []TrendBucket `json:"ingredients"`
	Dishes      []TrendBucket `json:"dishes"`
	Foods       []TrendBucket `json:"foods"`
}

var ErrInvalidInterval = errors.New("invalid_interval")
