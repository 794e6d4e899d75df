package brand

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/brand/repository"
	"github.com/capstore/capstore/internal/brand/service"
)

var Module = fx.Module("brand.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
