package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
	"github.com/foodledger/foodledger/internal/report/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&ingredientdomain.Ingredient{},
		&dishdomain.Dish{},
		&dishdomain.DishIngredient{},
		&fooddomain.CompletedFood{},
		&fooddomain.FoodDish{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:  conn,
		Log: zap.NewNop(),
	})
	return svc, conn, node
}

func TestIngredientGenreStats(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	for _, row := range []ingredientdomain.Ingredient{
		{ID: node.Generate(), Name: "chicken", Quantity: 1, Price: 400, Genre: ingredientdomain.GenreMeat},
		{ID: node.Generate(), Name: "pork", Quantity: 1, Price: 600, Genre: ingredientdomain.GenreMeat},
		{ID: node.Generate(), Name: "onion", Quantity: 1, Price: 100, Genre: ingredientdomain.GenreVegetable},
	} {
		require.NoError(t, conn.Create(&row).Error)
	}

	stats, err := svc.IngredientGenreStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Ordered by count descending, so meat comes first.
	assert.Equal(t, "meat", stats[0].Genre)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.Equal(t, 500.0, stats[0].Average)
	assert.Equal(t, 400.0, stats[0].Min)
	assert.Equal(t, 600.0, stats[0].Max)

	assert.Equal(t, "vegetable", stats[1].Genre)
	assert.Equal(t, int64(1), stats[1].Count)
}

func TestDishGenreStats(t *testing.T) {
	svc, conn, node := setupService(t)

	for _, row := range []dishdomain.Dish{
		{ID: node.Generate(), Name: "soup", Genre: "starter", TotalCost: 50},
		{ID: node.Generate(), Name: "steak", Genre: "main", TotalCost: 300},
		{ID: node.Generate(), Name: "curry", Genre: "main", TotalCost: 100},
	} {
		require.NoError(t, conn.Create(&row).Error)
	}

	stats, err := svc.DishGenreStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "main", stats[0].Genre)
	assert.Equal(t, 200.0, stats[0].Average)
}

func TestIngredientPopularity(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := ingredientdomain.Ingredient{ID: node.Generate(), Name: "chicken", Quantity: 1, Price: 400, Genre: ingredientdomain.GenreMeat}
	onion := ingredientdomain.Ingredient{ID: node.Generate(), Name: "onion", Quantity: 1, Price: 100, Genre: ingredientdomain.GenreVegetable}
	salt := ingredientdomain.Ingredient{ID: node.Generate(), Name: "salt", Quantity: 1, Price: 50, Genre: ingredientdomain.GenreSeasoning}
	for _, row := range []*ingredientdomain.Ingredient{&chicken, &onion, &salt} {
		require.NoError(t, conn.Create(row).Error)
	}

	// chicken is used by two dishes, onion by one, salt by none.
	dishA, dishB := node.Generate(), node.Generate()
	for _, link := range []dishdomain.DishIngredient{
		{ID: node.Generate(), DishID: dishA, IngredientID: chicken.ID, UsedQuantity: 1, UsedCost: 1},
		{ID: node.Generate(), DishID: dishB, IngredientID: chicken.ID, UsedQuantity: 1, UsedCost: 1},
		{ID: node.Generate(), DishID: dishA, IngredientID: onion.ID, UsedQuantity: 1, UsedCost: 1},
	} {
		require.NoError(t, conn.Create(&link).Error)
	}

	rows, err := svc.IngredientPopularity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, chicken.ID, rows[0].IngredientID)
	assert.Equal(t, int64(2), rows[0].UsageCount)
	assert.Equal(t, onion.ID, rows[1].IngredientID)

	rows, err = svc.IngredientPopularity(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "chicken", rows[0].Name)
}

func TestProfitabilityDistribution(t *testing.T) {
	svc, conn, node := setupService(t)

	price := func(v float64) *float64 { return &v }
	for _, row := range []fooddomain.CompletedFood{
		{ID: node.Generate(), Name: "excellent", Price: price(1000), TotalCost: 200}, // 80%
		{ID: node.Generate(), Name: "good", Price: price(1000), TotalCost: 600},      // 40%
		{ID: node.Generate(), Name: "fair", Price: price(1000), TotalCost: 750},      // 25%
		{ID: node.Generate(), Name: "low", Price: price(1000), TotalCost: 850},       // 15%
		{ID: node.Generate(), Name: "poor", Price: price(1000), TotalCost: 990},      // 1%
		{ID: node.Generate(), Name: "unpriced", TotalCost: 100},
	} {
		require.NoError(t, conn.Create(&row).Error)
	}

	dist, err := svc.ProfitabilityDistribution(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), dist.Excellent)
	assert.Equal(t, int64(1), dist.Good)
	assert.Equal(t, int64(1), dist.Fair)
	assert.Equal(t, int64(1), dist.Low)
	assert.Equal(t, int64(1), dist.Poor)
	assert.Equal(t, int64(1), dist.Unset)
}

func TestTrends_DailyBuckets(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, created := range []time.Time{
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -2).Add(2 * time.Hour),
		now.AddDate(0, 0, -1),
	} {
		row := ingredientdomain.Ingredient{
			ID:        node.Generate(),
			Name:      "x",
			Quantity:  1,
			Price:     1,
			Genre:     ingredientdomain.GenreMeat,
			CreatedAt: created,
			UpdatedAt: created,
		}
		require.NoError(t, conn.Create(&row).Error)
	}

	resp, err := svc.Trends(ctx, domain.TrendRequest{Interval: domain.TrendDaily, Days: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.TrendDaily, resp.Interval)
	require.NotEmpty(t, resp.Ingredients)

	var total int64
	byDay := make(map[time.Time]int64)
	for _, b := range resp.Ingredients {
		total += b.Count
		byDay[b.Start] = b.Count
	}
	assert.Equal(t, int64(3), total)

	twoDaysAgo := now.AddDate(0, 0, -2).Truncate(24 * time.Hour)
	assert.Equal(t, int64(2), byDay[twoDaysAgo])
}

func TestTrends_RejectsUnknownInterval(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Trends(context.Background(), domain.TrendRequest{Interval: "hourly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestTrends_DefaultsToDaily(t *testing.T) {
	svc, _, _ := setupService(t)

	resp, err := svc.Trends(context.Background(), domain.TrendRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.TrendDaily, resp.Interval)
	// 30 day window with one bucket per day, inclusive of today.
	assert.GreaterOrEqual(t, len(resp.Ingredients), 30)
}
