package admin_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nwptourism/internal/api/controllers"
	"nwptourism/internal/config"
	"nwptourism/internal/repositories"
	"nwptourism/internal/services"
	mem "nwptourism/pkg/memcache"
	"nwptourism/pkg/middleware"
)

var Module = fx.Provide(
	provideAdminUserRepo,
	provideAdminService,
	provideSessionResolver,
	provideAdminController,
)

func provideAdminUserRepo(db *gorm.DB) repositories.AdminUserRepository {
	return repositories.NewAdminUserRepository(db)
}

func provideAdminService(
	users repositories.AdminUserRepository,
	sessions mem.SessionStore,
	cfg config.SessionConfig,
	log *zap.Logger,
) (services.AdminServiceInterface, error) {
	return services.NewAdminService(users, sessions, services.SessionConfig{
		Secret: []byte(cfg.Secret),
		TTL:    cfg.TTL,
	}, log)
}

func provideSessionResolver(admin services.AdminServiceInterface) middleware.SessionResolver {
	return admin
}

func provideAdminController(admin services.AdminServiceInterface, cfg config.SessionConfig, log *zap.Logger) *controllers.AdminController {
	return controllers.NewAdminController(admin, controllers.CookieConfig{TTL: cfg.TTL, Secure: cfg.CookieSecure}, log)
}
