package db_fx

import (
	"context"
	"database/sql"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nwptourism/internal/config"
	"nwptourism/internal/infra"
)

var Module = fx.Provide(
	provideSQL,
	provideDB,
)

func provideSQL(lc fx.Lifecycle, cfg config.DatabaseConfig, log *zap.Logger) (*sql.DB, error) {
	db, err := infra.OpenPostgres(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.EnsureSchema(context.Background(), db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}

func provideDB(sqlDB *sql.DB) (*gorm.DB, error) {
	return infra.OpenGorm(sqlDB)
}
