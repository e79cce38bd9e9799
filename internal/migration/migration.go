package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	userdomain "github.com/foodledger/foodledger/internal/auth/domain"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
	memodomain "github.com/foodledger/foodledger/internal/memo/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the embedded SQL migrations against Postgres so the
// service is usable out of the box for local and self-hosted setups.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate creates the schema through gorm for the dialects the SQL
// migration set does not cover (sqlite, mysql).
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&ingredientdomain.Ingredient{},
		&dishdomain.Dish{},
		&dishdomain.DishIngredient{},
		&fooddomain.CompletedFood{},
		&fooddomain.FoodDish{},
		&memodomain.Memo{},
		&userdomain.User{},
	)
}
