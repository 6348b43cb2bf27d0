package controllers_fx

import (
	"database/sql"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/internal/api/controllers"
	"nwptourism/internal/geo"
)

var Module = fx.Options(
	fx.Provide(provideSystemController),
)

func provideSystemController(gate *geo.Gate, db *sql.DB, log *zap.Logger) *controllers.SystemController {
	return controllers.NewSystemController(gate, db, log)
}
