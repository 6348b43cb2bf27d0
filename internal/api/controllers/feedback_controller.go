package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nwptourism/internal/models/request_models"
	"nwptourism/internal/models/response_models"
	"nwptourism/internal/services"
	"nwptourism/pkg/utils"
)

type FeedbackController struct {
	feedbackService services.FeedbackServiceInterface
	log             *zap.Logger
}

func NewFeedbackController(feedbackService services.FeedbackServiceInterface, log *zap.Logger) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService, log: log}
}

// SubmitFeedback godoc
// @Summary Submit tourist feedback
// @Description Accepts a geotagged comment with an optional photo (multipart field "image").
// @Tags Feedback
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /submit [post]
func (f *FeedbackController) SubmitFeedback(c *gin.Context) {
	var req request_models.SubmitFeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	img, closeImg, err := optionalUpload(c, "image")
	defer closeImg()
	if err != nil {
		utils.HandleServiceError(c, f.log, err)
		return
	}

	id, err := f.feedbackService.Submit(c.Request.Context(), services.SubmitFeedbackInput{
		Name:      req.Name,
		Comment:   req.Comment,
		Latitude:  req.Latitude.String(),
		Longitude: req.Longitude.String(),
		Image:     img,
	})
	if err != nil {
		utils.HandleServiceError(c, f.log, err)
		return
	}

	utils.RespondSuccess(c, response_models.Created{ID: id.String()}, "Feedback submitted!")
}

// ListFeedback godoc
// @Summary List feedback
// @Description All feedback records, newest first. Admin only.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/feedback [get]
func (f *FeedbackController) ListFeedback(c *gin.Context) {
	items, err := f.feedbackService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, f.log, err)
		return
	}

	out := make([]response_models.Feedback, 0, len(items))
	for _, fb := range items {
		out = append(out, response_models.Feedback{
			ID:        fb.ID.String(),
			Name:      fb.Name,
			Comment:   fb.Comment,
			Latitude:  fb.Latitude,
			Longitude: fb.Longitude,
			ImageURL:  fb.ImageURL,
			Status:    string(fb.Status),
			CreatedAt: utils.FormatRFC3339LK(fb.CreatedAt),
		})
	}
	utils.RespondSuccess(c, out, "Feedback fetched successfully")
}

// UpdateStatus godoc
// @Summary Change feedback status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Feedback id"
// @Param request body request_models.UpdateFeedbackStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/feedback/{id}/status [post]
func (f *FeedbackController) UpdateStatus(c *gin.Context) {
	var req request_models.UpdateFeedbackStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleServiceError(c, f.log, utils.ErrInvalidStatus)
		return
	}

	if err := f.feedbackService.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		utils.HandleServiceError(c, f.log, err)
		return
	}
	utils.RespondSuccess(c, nil, "Status updated")
}
