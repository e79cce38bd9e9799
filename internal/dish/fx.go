package dish

import (
	"github.com/foodledger/foodledger/internal/dish/repository"
	"github.com/foodledger/foodledger/internal/dish/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dish.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
