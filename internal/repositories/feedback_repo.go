package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nwptourism/internal/models/db_models"
)

type FeedbackRepositoryInterface interface {
	CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error
	ListFeedback(ctx context.Context) ([]db_models.Feedback, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepositoryInterface {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// ListFeedback returns every record, newest first.
func (r *FeedbackRepository) ListFeedback(ctx context.Context) ([]db_models.Feedback, error) {
	var feedbacks []db_models.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

// UpdateStatus returns gorm.ErrRecordNotFound when no row has the id.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.FeedbackStatus) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Feedback{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
