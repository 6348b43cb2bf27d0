package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"nwptourism/internal/config"
	"nwptourism/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

func provideLogger(lc fx.Lifecycle, cfg config.LogConfig) (*zap.Logger, error) {
	log, err := infra.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}
