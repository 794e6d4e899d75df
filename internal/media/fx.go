package media

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/media/repository"
	"github.com/capstore/capstore/internal/media/service"
)

var Module = fx.Module("media.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
