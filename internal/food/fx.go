package food

import (
	"github.com/foodledger/foodledger/internal/food/repository"
	"github.com/foodledger/foodledger/internal/food/service"
	"go.uber.org/fx"
)

var Module = fx.Module("food.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
