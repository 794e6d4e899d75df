package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/config"
	"github.com/capstore/capstore/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		if cfg.BootstrapAdmin {
			return seed.EnsureAdmin(conn)
		}
		return nil
	}),
)
