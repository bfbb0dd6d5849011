package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/renolab/bathquote/internal/bathroom"
	"github.com/renolab/bathquote/internal/catalog"
	"github.com/renolab/bathquote/internal/clock"
	"github.com/renolab/bathquote/internal/config"
	"github.com/renolab/bathquote/internal/logger"
	"github.com/renolab/bathquote/internal/migration"
	"github.com/renolab/bathquote/internal/observability"
	"github.com/renolab/bathquote/internal/packageprice"
	"github.com/renolab/bathquote/internal/quote"
	"github.com/renolab/bathquote/internal/ratecard"
	"github.com/renolab/bathquote/internal/server"
	"github.com/renolab/bathquote/internal/snapshot"
	"github.com/renolab/bathquote/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		catalog.Module,
		bathroom.Module,
		ratecard.Module,
		quote.Module,
		packageprice.Module,
		snapshot.Module,

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
