package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/parkline/internal/clock"
	"github.com/smallbiznis/parkline/internal/config"
	"github.com/smallbiznis/parkline/internal/migration"
	"github.com/smallbiznis/parkline/internal/plan"
	"github.com/smallbiznis/parkline/internal/pretransaction"
	payment "github.com/smallbiznis/parkline/internal/providers/payment"
	"github.com/smallbiznis/parkline/internal/saleactivity"
	"github.com/smallbiznis/parkline/internal/scheduler"
	"github.com/smallbiznis/parkline/internal/server"
	"github.com/smallbiznis/parkline/internal/user"
	"github.com/smallbiznis/parkline/pkg/db"
	"github.com/smallbiznis/parkline/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		payment.Module,
		user.Module,
		plan.Module,
		saleactivity.Module,
		pretransaction.Module,
		scheduler.Module,
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
