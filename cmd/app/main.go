package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/cmd/fx/admin_fx"
	"nwptourism/cmd/fx/asset_fx"
	"nwptourism/cmd/fx/boundary_fx"
	"nwptourism/cmd/fx/config_fx"
	"nwptourism/cmd/fx/controllers_fx"
	"nwptourism/cmd/fx/db_fx"
	"nwptourism/cmd/fx/feedback_fx"
	"nwptourism/cmd/fx/http_fx"
	"nwptourism/cmd/fx/logger_fx"
	"nwptourism/cmd/fx/memcache_fx"
	"nwptourism/cmd/fx/notify_fx"
	"nwptourism/cmd/fx/upload_fx"
	"nwptourism/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		boundary_fx.Module,
		upload_fx.Module,
		notify_fx.Module,
		feedback_fx.Module,
		asset_fx.Module,
		admin_fx.Module,
		controllers_fx.Module,
		http_fx.Module,

		fx.Invoke(warnDevSecret),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func warnDevSecret(cfg config.Config, log *zap.Logger) {
	if cfg.UsingDevSecret() {
		log.Warn("SESSION_SECRET not set, using the development secret")
	}
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("Server running", zap.String("addr", "http://localhost:"+cfg.Port))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
