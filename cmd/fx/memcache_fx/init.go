package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/internal/config"
	"nwptourism/internal/infra"
	mem "nwptourism/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

// provideSessionStore keeps sessions in Redis when REDIS_ADDR is set, so
// they survive restarts and are shared between replicas; otherwise in
// process memory.
func provideSessionStore(lc fx.Lifecycle, cfg config.RedisConfig, log *zap.Logger) (mem.SessionStore, error) {
	if !cfg.Enabled() {
		log.Info("using in-memory session store")
		return mem.NewInMemorySessions(), nil
	}

	client, err := infra.OpenRedis(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("using redis session store", zap.String("addr", cfg.Addr))
	return mem.NewRedisSessions(client), nil
}
