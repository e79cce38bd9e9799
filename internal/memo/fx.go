package memo

import (
	"github.com/foodledger/foodledger/internal/memo/service"
	"go.uber.org/fx"
)

var Module = fx.Module("memo.service",
	fx.Provide(service.New),
)
