package order

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/order/repository"
	"github.com/capstore/capstore/internal/order/service"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
