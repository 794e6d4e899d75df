package auth

import (
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/auth/repository"
	"github.com/capstore/capstore/internal/auth/service"
	"github.com/capstore/capstore/internal/auth/session"
)

// Module provides account and session management.
var Module = fx.Module("auth",
	fx.Provide(
		repository.NewRepository,
		repository.NewSessionRepository,
		session.NewManager,
		service.NewService,
	),
)
