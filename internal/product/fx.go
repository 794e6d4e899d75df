package product

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/product/repository"
	"github.com/capstore/capstore/internal/product/service"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
