package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/config"
	"github.com/capstore/capstore/internal/migration"
	"github.com/capstore/capstore/internal/observability"
	"github.com/capstore/capstore/internal/server"
	"github.com/capstore/capstore/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface and all feature modules it wires in
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
