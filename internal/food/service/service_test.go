package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	"github.com/foodledger/foodledger/internal/food/domain"
	"github.com/foodledger/foodledger/internal/food/repository"
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
		&dishdomain.Dish{},
		&domain.CompletedFood{},
		&domain.FoodDish{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, conn, node
}

func seedDish(t *testing.T, conn *gorm.DB, node *snowflake.Node, name string, totalCost float64) dishdomain.Dish {
	t.Helper()

	dish := dishdomain.Dish{
		ID:        node.Generate(),
		Name:      name,
		TotalCost: totalCost,
	}
	require.NoError(t, conn.Create(&dish).Error)
	return dish
}

func TestCreateWithDishes_SnapshotsUsageCost(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	teriyaki := seedDish(t, conn, node, "teriyaki chicken", 150)
	rice := seedDish(t, conn, node, "steamed rice", 40)

	price := 850.0
	detail, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name:  "teriyaki plate",
		Price: &price,
		Dishes: []domain.DishLine{
			{DishID: teriyaki.ID.String(), UsageQuantity: 1, UsageUnit: "serving"},
			{DishID: rice.ID.String(), UsageQuantity: 1, UsageUnit: "serving"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 190.0, detail.TotalCost)
	assert.Equal(t, 660.0, detail.Profit)
	assert.InDelta(t, 77.65, detail.ProfitRate, 0.01)
	require.Len(t, detail.Dishes, 2)
	assert.Equal(t, "teriyaki chicken", detail.Dishes[0].DishName)
	assert.Equal(t, 150.0, detail.Dishes[0].UsageCost)
}

func TestCreateWithDishes_RatioAndServingMultiplyAlike(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	sauce := seedDish(t, conn, node, "house sauce", 100)

	asRatio, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "ratio food",
		Dishes: []domain.DishLine{
			{DishID: sauce.ID.String(), UsageQuantity: 0.5, UsageUnit: "ratio"},
		},
	})
	require.NoError(t, err)

	asServing, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "serving food",
		Dishes: []domain.DishLine{
			{DishID: sauce.ID.String(), UsageQuantity: 0.5, UsageUnit: "serving"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, asRatio.TotalCost)
	assert.Equal(t, asRatio.TotalCost, asServing.TotalCost)
}

func TestCreateWithDishes_DefaultsUnitToServing(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	sauce := seedDish(t, conn, node, "house sauce", 100)

	detail, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "plain food",
		Dishes: []domain.DishLine{
			{DishID: sauce.ID.String(), UsageQuantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, detail.Dishes, 1)
	assert.Equal(t, domain.UsageUnitServing, detail.Dishes[0].UsageUnit)
	assert.Equal(t, 200.0, detail.TotalCost)
}

func TestCreateWithDishes_RejectsUnknownUnit(t *testing.T) {
	svc, conn, node := setupService(t)

	sauce := seedDish(t, conn, node, "house sauce", 100)

	_, err := svc.CreateWithDishes(context.Background(), domain.CreateRequest{
		Name: "bad food",
		Dishes: []domain.DishLine{
			{DishID: sauce.ID.String(), UsageQuantity: 1, UsageUnit: "liters"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUsageUnit)
}

func TestCreateWithDishes_RollsBackOnMissingDish(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	sauce := seedDish(t, conn, node, "house sauce", 100)
	ghost := node.Generate()

	_, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "broken food",
		Dishes: []domain.DishLine{
			{DishID: sauce.ID.String(), UsageQuantity: 1},
			{DishID: ghost.String(), UsageQuantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDishNotFound)

	var foods, links int64
	require.NoError(t, conn.Model(&domain.CompletedFood{}).Count(&foods).Error)
	require.NoError(t, conn.Model(&domain.FoodDish{}).Count(&links).Error)
	assert.Equal(t, int64(0), foods)
	assert.Equal(t, int64(0), links)
}

func TestProfit_ZeroWithoutPrice(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	sauce := seedDish(t, conn, node, "house sauce", 100)

	detail, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "unpriced food",
		Dishes: []domain.DishLine{
			{DishID: sauce.ID.String(), UsageQuantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Nil(t, detail.Price)
	assert.Equal(t, 0.0, detail.Profit)
	assert.Equal(t, 0.0, detail.ProfitRate)
}

func TestUpdateWithDishes_ReplacesLinksAndRecomputes(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	teriyaki := seedDish(t, conn, node, "teriyaki chicken", 150)
	rice := seedDish(t, conn, node, "steamed rice", 40)

	detail, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "plate",
		Dishes: []domain.DishLine{
			{DishID: teriyaki.ID.String(), UsageQuantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 150.0, detail.TotalCost)

	updated, err := svc.UpdateWithDishes(ctx, domain.UpdateRequest{
		ID: detail.ID.String(),
		Dishes: []domain.DishLine{
			{DishID: rice.ID.String(), UsageQuantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, updated.TotalCost)
	require.Len(t, updated.Dishes, 1)
	assert.Equal(t, rice.ID, updated.Dishes[0].DishID)
}

func TestUpdateWithDishes_PriceOnlyKeepsLinks(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	teriyaki := seedDish(t, conn, node, "teriyaki chicken", 150)

	detail, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "plate",
		Dishes: []domain.DishLine{
			{DishID: teriyaki.ID.String(), UsageQuantity: 1},
		},
	})
	require.NoError(t, err)

	price := 500.0
	updated, err := svc.UpdateWithDishes(ctx, domain.UpdateRequest{
		ID:    detail.ID.String(),
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, updated.TotalCost)
	assert.Equal(t, 350.0, updated.Profit)
	assert.Len(t, updated.Dishes, 1)
}

func TestDelete_CascadesLinks(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	teriyaki := seedDish(t, conn, node, "teriyaki chicken", 150)

	detail, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name: "plate",
		Dishes: []domain.DishLine{
			{DishID: teriyaki.ID.String(), UsageQuantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, detail.ID.String()))

	var foods, links, dishes int64
	require.NoError(t, conn.Model(&domain.CompletedFood{}).Count(&foods).Error)
	require.NoError(t, conn.Model(&domain.FoodDish{}).Count(&links).Error)
	require.NoError(t, conn.Model(&dishdomain.Dish{}).Count(&dishes).Error)
	assert.Equal(t, int64(0), foods)
	assert.Equal(t, int64(0), links)
	// The referenced dish itself stays.
	assert.Equal(t, int64(1), dishes)
}

func TestList_AttachesProfitFigures(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	teriyaki := seedDish(t, conn, node, "teriyaki chicken", 150)

	price := 850.0
	_, err := svc.CreateWithDishes(ctx, domain.CreateRequest{
		Name:  "teriyaki plate",
		Price: &price,
		Dishes: []domain.DishLine{
			{DishID: teriyaki.ID.String(), UsageQuantity: 1},
		},
	})
	require.NoError(t, err)

	res, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 700.0, res.Items[0].Profit)
	assert.InDelta(t, 82.35, res.Items[0].ProfitRate, 0.01)
}
