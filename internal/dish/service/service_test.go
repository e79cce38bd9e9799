package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/dish/domain"
	"github.com/foodledger/foodledger/internal/dish/repository"
	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
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
		&domain.Dish{},
		&domain.DishIngredient{},
		&fooddomain.FoodDish{},
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

func seedIngredient(t *testing.T, conn *gorm.DB, node *snowflake.Node, name string, unitPrice float64) ingredientdomain.Ingredient {
	t.Helper()

	item := ingredientdomain.Ingredient{
		ID:        node.Generate(),
		Name:      name,
		Quantity:  1,
		Price:     unitPrice,
		UnitPrice: unitPrice,
		Genre:     ingredientdomain.GenreMeat,
	}
	require.NoError(t, conn.Create(&item).Error)
	return item
}

func TestCreateWithIngredients_SnapshotsCosts(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)
	sauce := seedIngredient(t, conn, node, "soy sauce", 0.3)

	detail, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name:  "teriyaki chicken",
		Genre: "main",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 250},
			{IngredientID: sauce.ID.String(), UsedQuantity: 50},
		},
	})
	require.NoError(t, err)

	// 0.9*250 + 0.3*50 = 225 + 15 = 240
	assert.Equal(t, 240.0, detail.TotalCost)
	require.Len(t, detail.Ingredients, 2)
	assert.Equal(t, 225.0, detail.Ingredients[0].UsedCost)
	assert.Equal(t, "chicken thigh", detail.Ingredients[0].IngredientName)
	assert.Equal(t, 15.0, detail.Ingredients[1].UsedCost)
}

func TestCreateWithIngredients_RollsBackOnMissingIngredient(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)
	ghost := node.Generate()

	_, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "broken dish",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 100},
			{IngredientID: ghost.String(), UsedQuantity: 10},
		},
	})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	var dishes, links int64
	require.NoError(t, conn.Model(&domain.Dish{}).Count(&dishes).Error)
	require.NoError(t, conn.Model(&domain.DishIngredient{}).Count(&links).Error)
	assert.Equal(t, int64(0), dishes)
	assert.Equal(t, int64(0), links)
}

func TestCreateWithIngredients_Validation(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)

	_, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: " ",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "soup",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 0},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSnapshot_SurvivesIngredientPriceChange(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)

	detail, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "teriyaki chicken",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 100},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 90.0, detail.TotalCost)

	// Reprice the ingredient afterwards; the dish keeps its snapshot.
	require.NoError(t, conn.Model(&ingredientdomain.Ingredient{}).
		Where("id = ?", chicken.ID).
		Update("unit_price", 2.0).Error)

	got, err := svc.GetWithIngredients(ctx, detail.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 90.0, got.TotalCost)
	assert.Equal(t, 90.0, got.Ingredients[0].UsedCost)
}

func TestUpdateWithIngredients_ReplacesLinks(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)
	sauce := seedIngredient(t, conn, node, "soy sauce", 0.3)

	detail, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "teriyaki chicken",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 100},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 90.0, detail.TotalCost)

	updated, err := svc.UpdateWithIngredients(ctx, domain.UpdateRequest{
		ID: detail.ID.String(),
		Ingredients: []domain.IngredientLine{
			{IngredientID: sauce.ID.String(), UsedQuantity: 50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 15.0, updated.TotalCost)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, sauce.ID, updated.Ingredients[0].IngredientID)

	var links int64
	require.NoError(t, conn.Model(&domain.DishIngredient{}).Count(&links).Error)
	assert.Equal(t, int64(1), links)
}

func TestUpdateWithIngredients_EmptyListKeepsLinks(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)

	detail, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "teriyaki chicken",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 100},
		},
	})
	require.NoError(t, err)

	name := "teriyaki chicken deluxe"
	updated, err := svc.UpdateWithIngredients(ctx, domain.UpdateRequest{
		ID:   detail.ID.String(),
		Name: &name,
	})
	require.NoError(t, err)

	assert.Equal(t, "teriyaki chicken deluxe", updated.Name)
	assert.Equal(t, 90.0, updated.TotalCost)
	assert.Len(t, updated.Ingredients, 1)
}

func TestDelete_ConflictsWhileReferenced(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	chicken := seedIngredient(t, conn, node, "chicken thigh", 0.9)

	detail, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "teriyaki chicken",
		Ingredients: []domain.IngredientLine{
			{IngredientID: chicken.ID.String(), UsedQuantity: 100},
		},
	})
	require.NoError(t, err)

	ref := fooddomain.FoodDish{
		ID:            node.Generate(),
		FoodID:        node.Generate(),
		DishID:        detail.ID,
		UsageQuantity: 1,
		UsageUnit:     fooddomain.UsageUnitServing,
		UsageCost:     detail.TotalCost,
	}
	require.NoError(t, conn.Create(&ref).Error)

	err = svc.Delete(ctx, detail.ID.String())
	assert.ErrorIs(t, err, domain.ErrReferenced)

	// Nothing was removed.
	var dishes, links int64
	require.NoError(t, conn.Model(&domain.Dish{}).Count(&dishes).Error)
	require.NoError(t, conn.Model(&domain.DishIngredient{}).Count(&links).Error)
	assert.Equal(t, int64(1), dishes)
	assert.Equal(t, int64(1), links)

	// Dropping the reference unblocks deletion.
	require.NoError(t, conn.Delete(&ref).Error)
	require.NoError(t, svc.Delete(ctx, detail.ID.String()))

	require.NoError(t, conn.Model(&domain.Dish{}).Count(&dishes).Error)
	require.NoError(t, conn.Model(&domain.DishIngredient{}).Count(&links).Error)
	assert.Equal(t, int64(0), dishes)
	assert.Equal(t, int64(0), links)
}

func TestList_FiltersByCostRange(t *testing.T) {
	svc, conn, node := setupService(t)
	ctx := context.Background()

	cheap := seedIngredient(t, conn, node, "carrot", 0.2)
	rich := seedIngredient(t, conn, node, "wagyu", 10)

	_, err := svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "carrot soup",
		Ingredients: []domain.IngredientLine{
			{IngredientID: cheap.ID.String(), UsedQuantity: 100},
		},
	})
	require.NoError(t, err)

	_, err = svc.CreateWithIngredients(ctx, domain.CreateRequest{
		Name: "steak",
		Ingredients: []domain.IngredientLine{
			{IngredientID: rich.ID.String(), UsedQuantity: 200},
		},
	})
	require.NoError(t, err)

	minCost := 100.0
	res, err := svc.List(ctx, domain.ListRequest{MinTotalCost: &minCost})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "steak", res.Items[0].Name)
	assert.Equal(t, int64(1), res.PageInfo.Total)
}
