package boundary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/internal/config"
	"nwptourism/internal/geo"
	"nwptourism/internal/services"
)

var Module = fx.Provide(
	provideGate,
	func(g *geo.Gate) services.Boundary { return g },
)

func provideGate(cfg config.Config, log *zap.Logger) *geo.Gate {
	return geo.Load(cfg.BoundaryPath, log.Named("boundary"))
}
