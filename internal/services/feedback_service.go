package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nwptourism/internal/models/db_models"
	"nwptourism/internal/repositories"
	"nwptourism/pkg/metrics"
	"nwptourism/pkg/utils"
)

const notifyTimeout = 15 * time.Second

type SubmitFeedbackInput struct {
	Name      string
	Comment   string
	Latitude  string
	Longitude string
	Image     *Upload
}

type FeedbackServiceInterface interface {
	Submit(ctx context.Context, in SubmitFeedbackInput) (uuid.UUID, error)
	List(ctx context.Context) ([]db_models.Feedback, error)
	SetStatus(ctx context.Context, id string, status string) error
}

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepositoryInterface
	boundary     Boundary
	uploader     ImageUploader
	notifier     Notifier
	log          *zap.Logger
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepositoryInterface,
	boundary Boundary,
	uploader ImageUploader,
	notifier Notifier,
	log *zap.Logger,
) FeedbackServiceInterface {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		boundary:     boundary,
		uploader:     uploader,
		notifier:     notifier,
		log:          log.Named("feedback"),
	}
}

func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (uuid.UUID, error) {
	lat, lon, err := utils.ParseCoordinates(in.Latitude, in.Longitude)
	if err != nil {
		metrics.FeedbackRejectedTotal.WithLabelValues("validation").Inc()
		return uuid.Nil, err
	}

	if err := s.boundary.Check(lat, lon); err != nil {
		if errors.Is(err, utils.ErrOutOfRegion) {
			metrics.FeedbackRejectedTotal.WithLabelValues("out_of_region").Inc()
		} else {
			metrics.FeedbackRejectedTotal.WithLabelValues("boundary_unavailable").Inc()
		}
		return uuid.Nil, err
	}

	var imageURL *string
	if in.Image != nil {
		url, err := s.uploader.Upload(ctx, FeedbackImageFolder, in.Image)
		if err != nil {
			metrics.FeedbackRejectedTotal.WithLabelValues("upload").Inc()
			return uuid.Nil, err
		}
		if url != "" {
			imageURL = &url
		}
	}

	feedback := &db_models.Feedback{
		Name:      strings.TrimSpace(in.Name),
		Comment:   strings.TrimSpace(in.Comment),
		Latitude:  lat,
		Longitude: lon,
		ImageURL:  imageURL,
		Status:    db_models.FeedbackPending,
	}
	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		s.log.Error("error creating feedback", zap.Error(err))
		return uuid.Nil, utils.ErrDatabaseError
	}
	metrics.FeedbackSubmittedTotal.Inc()

	s.notify(ctx, feedback)
	return feedback.ID, nil
}

// notify runs detached from the request so a slow or failing notifier never
// affects the response.
func (s *FeedbackService) notify(ctx context.Context, f *db_models.Feedback) {
	ev := FeedbackEvent{
		ID:        f.ID.String(),
		Name:      f.Name,
		Comment:   f.Comment,
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		CreatedAt: f.CreatedAt,
	}
	if f.ImageURL != nil {
		ev.ImageURL = *f.ImageURL
	}

	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.FeedbackSubmitted(nctx, ev); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			s.log.Warn("feedback notification failed", zap.String("feedback_id", ev.ID), zap.Error(err))
		}
	}()
}

func (s *FeedbackService) List(ctx context.Context) ([]db_models.Feedback, error) {
	items, err := s.feedbackRepo.ListFeedback(ctx)
	if err != nil {
		s.log.Error("error listing feedback", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return items, nil
}

func (s *FeedbackService) SetStatus(ctx context.Context, id string, status string) error {
	st := db_models.FeedbackStatus(status)
	if !st.Valid() {
		return utils.ErrInvalidStatus
	}
	fid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return utils.ErrInvalidID
	}

	if err := s.feedbackRepo.UpdateStatus(ctx, fid, st); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrFeedbackNotFound
		}
		s.log.Error("error updating feedback status", zap.String("id", fid.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	s.log.Info("feedback status changed", zap.String("id", fid.String()), zap.String("status", string(st)))
	return nil
}
