package config_fx

import (
	"go.uber.org/fx"

	"nwptourism/internal/config"
)

var Module = fx.Provide(
	config.Load,
	func(c config.Config) config.DatabaseConfig { return c.Database },
	func(c config.Config) config.LogConfig { return c.Log },
	func(c config.Config) config.RedisConfig { return c.Redis },
	func(c config.Config) config.SessionConfig { return c.Session },
)
