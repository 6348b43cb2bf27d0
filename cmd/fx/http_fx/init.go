package http_fx

import (
	"go.uber.org/fx"

	"nwptourism/internal/api"
	"nwptourism/internal/config"
)

var Module = fx.Provide(
	provideRouterConfig,
	api.ProvideRouter,
)

func provideRouterConfig(cfg config.Config) api.RouterConfig {
	return api.RouterConfig{
		AllowedOrigins:           cfg.AllowedOrig,
		StaticDir:                cfg.StaticDir,
		AssetUploadRequiresAdmin: cfg.AssetUploadRequiresAdmin,
	}
}
