package price

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/price/repository"
	"github.com/capstore/capstore/internal/price/service"
)

var Module = fx.Module("price.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
