package upload_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/internal/config"
	"nwptourism/internal/services"
)

var Module = fx.Provide(provideImageUploader)

func provideImageUploader(cfg config.Config, log *zap.Logger) (services.ImageUploader, error) {
	c := cfg.Cloudinary
	if !c.Enabled() {
		log.Warn("Cloudinary API key not found, uploaded images will be dropped")
		return services.NoopImageUploader{}, nil
	}
	return services.NewCloudinaryUploader(c.CloudName, c.APIKey, c.APISecret)
}
