package migration

import (
	"github.com/foodledger/foodledger/internal/config"
	"github.com/foodledger/foodledger/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.SeedOnStart && !cfg.IsProduction() {
			return seed.EnsureSampleData(conn)
		}
		return nil
	}),
)
