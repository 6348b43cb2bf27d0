package feedback_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nwptourism/internal/api/controllers"
	"nwptourism/internal/repositories"
	"nwptourism/internal/services"
)

var Module = fx.Provide(
	provideFeedbackRepo, provideFeedbackService, provideFeedbackController,
	provideExportService, provideExportController,
)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepositoryInterface {
	return repositories.NewFeedbackRepository(db)
}

func provideFeedbackService(
	feedbackRepo repositories.FeedbackRepositoryInterface,
	boundary services.Boundary,
	uploader services.ImageUploader,
	notifier services.Notifier,
	log *zap.Logger,
) services.FeedbackServiceInterface {
	return services.NewFeedbackService(feedbackRepo, boundary, uploader, notifier, log)
}

func provideFeedbackController(feedbackService services.FeedbackServiceInterface, log *zap.Logger) *controllers.FeedbackController {
	return controllers.NewFeedbackController(feedbackService, log)
}

func provideExportService(feedbackRepo repositories.FeedbackRepositoryInterface, log *zap.Logger) services.ExportServiceInterface {
	return services.NewExportService(feedbackRepo, log)
}

func provideExportController(exportService services.ExportServiceInterface, log *zap.Logger) *controllers.ExportController {
	return controllers.NewExportController(exportService, log)
}
