// Package seed populates a development database with sample records so the
// API is explorable immediately after startup.
package seed

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/foodledger/foodledger/internal/auth/domain"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@foodledger.local"
	defaultAdminPassword = "changeme123"
	defaultAdminName     = "Foodledger Admin"
)

type sampleIngredient struct {
	name     string
	store    string
	quantity float64
	unit     string
	price    float64
	genre    ingredientdomain.Genre
}

var sampleIngredients = []sampleIngredient{
	{name: "chicken thigh", store: "central market", quantity: 500, unit: "g", price: 450, genre: ingredientdomain.GenreMeat},
	{name: "onion", store: "central market", quantity: 3, unit: "pc", price: 120, genre: ingredientdomain.GenreVegetable},
	{name: "soy sauce", store: "grocery", quantity: 1000, unit: "ml", price: 300, genre: ingredientdomain.GenreSauce},
}

// EnsureSampleData seeds a demo admin account plus one ingredient, dish and
// completed-food chain. It is idempotent and safe to run on every startup.
func EnsureSampleData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAdminTx(ctx, tx, node); err != nil {
			return err
		}

		ingredients, err := ensureIngredientsTx(ctx, tx, node)
		if err != nil {
			return err
		}

		dish, err := ensureDishTx(ctx, tx, node, ingredients)
		if err != nil {
			return err
		}

		return ensureFoodTx(ctx, tx, node, dish)
	})
}

func ensureAdminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var user authdomain.User
	err := tx.WithContext(ctx).
		Where("email = ?", defaultAdminEmail).
		First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:           node.Generate(),
		Email:        strings.ToLower(defaultAdminEmail),
		Name:         defaultAdminName,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&user).Error
}

func ensureIngredientsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) ([]ingredientdomain.Ingredient, error) {
	out := make([]ingredientdomain.Ingredient, 0, len(sampleIngredients))
	now := time.Now().UTC()

	for _, s := range sampleIngredients {
		var existing ingredientdomain.Ingredient
		err := tx.WithContext(ctx).
			Where("name = ? AND store = ?", s.name, s.store).
			First(&existing).Error
		if err == nil {
			out = append(out, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		record := ingredientdomain.Ingredient{
			ID:        node.Generate(),
			Name:      s.name,
			Store:     s.store,
			Quantity:  s.quantity,
			Unit:      s.unit,
			Price:     s.price,
			UnitPrice: math.Round(s.price/s.quantity*100) / 100,
			Genre:     s.genre,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

func ensureDishTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, ingredients []ingredientdomain.Ingredient) (*dishdomain.Dish, error) {
	const dishName = "teriyaki chicken"

	var existing dishdomain.Dish
	err := tx.WithContext(ctx).Where("name = ?", dishName).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	dish := dishdomain.Dish{
		ID:        node.Generate(),
		Name:      dishName,
		Genre:     "main",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&dish).Error; err != nil {
		return nil, err
	}

	usedQuantities := []float64{250, 1, 50}
	total := 0.0
	for i, ing := range ingredients {
		if i >= len(usedQuantities) {
			break
		}
		usedCost := ing.UnitPrice * usedQuantities[i]
		link := dishdomain.DishIngredient{
			ID:           node.Generate(),
			DishID:       dish.ID,
			IngredientID: ing.ID,
			UsedQuantity: usedQuantities[i],
			UsedCost:     usedCost,
			CreatedAt:    now,
		}
		if err := tx.WithContext(ctx).Create(&link).Error; err != nil {
			return nil, err
		}
		total += usedCost
	}

	if err := tx.WithContext(ctx).
		Model(&dishdomain.Dish{}).
		Where("id = ?", dish.ID).
		Update("total_cost", total).Error; err != nil {
		return nil, err
	}
	dish.TotalCost = total

	return &dish, nil
}

func ensureFoodTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, dish *dishdomain.Dish) error {
	const foodName = "teriyaki chicken plate"

	var existing fooddomain.CompletedFood
	err := tx.WithContext(ctx).Where("name = ?", foodName).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	price := 850.0
	food := fooddomain.CompletedFood{
		ID:        node.Generate(),
		Name:      foodName,
		Price:     &price,
		TotalCost: dish.TotalCost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&food).Error; err != nil {
		return err
	}

	link := fooddomain.FoodDish{
		ID:            node.Generate(),
		FoodID:        food.ID,
		DishID:        dish.ID,
		UsageQuantity: 1,
		UsageUnit:     fooddomain.UsageUnitServing,
		UsageCost:     dish.TotalCost,
		CreatedAt:     now,
	}
	return tx.WithContext(ctx).Create(&link).Error
}
