package asset_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nwptourism/internal/api/controllers"
	"nwptourism/internal/repositories"
	"nwptourism/internal/services"
)

var Module = fx.Provide(
	provideAssetRepo, provideAssetService, provideAssetController,
)

func provideAssetRepo(db *gorm.DB) repositories.AssetRepository {
	return repositories.NewAssetRepository(db)
}

func provideAssetService(
	assetRepo repositories.AssetRepository,
	boundary services.Boundary,
	uploader services.ImageUploader,
	log *zap.Logger,
) services.AssetServiceInterface {
	return services.NewAssetService(assetRepo, boundary, uploader, log)
}

func provideAssetController(assetService services.AssetServiceInterface, log *zap.Logger) *controllers.AssetController {
	return controllers.NewAssetController(assetService, log)
}
