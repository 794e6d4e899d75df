package stock

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/stock/repository"
	"github.com/capstore/capstore/internal/stock/service"
)

var Module = fx.Module("stock.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
