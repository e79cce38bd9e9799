package ingredient

import (
	"github.com/foodledger/foodledger/internal/ingredient/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ingredient.service",
	fx.Provide(service.New),
)
