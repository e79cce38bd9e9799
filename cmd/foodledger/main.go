package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/foodledger/foodledger/internal/auth"
	"github.com/foodledger/foodledger/internal/config"
	"github.com/foodledger/foodledger/internal/dish"
	"github.com/foodledger/foodledger/internal/food"
	"github.com/foodledger/foodledger/internal/ingredient"
	"github.com/foodledger/foodledger/internal/logger"
	"github.com/foodledger/foodledger/internal/memo"
	"github.com/foodledger/foodledger/internal/migration"
	"github.com/foodledger/foodledger/internal/report"
	"github.com/foodledger/foodledger/internal/server"
	"github.com/foodledger/foodledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		ingredient.Module,
		dish.Module,
		food.Module,
		memo.Module,
		report.Module,
		auth.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
