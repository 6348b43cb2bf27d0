package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Code:    code,
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinels to HTTP outcomes. Anything that
// is not a known client error is logged and reported as a generic 500.
func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrMissingCoordinates):
		RespondError(c, http.StatusBadRequest, "Latitude and Longitude are required.")
	case errors.Is(err, ErrInvalidCoordinates):
		RespondError(c, http.StatusBadRequest, "Latitude and Longitude must be valid numbers.")
	case errors.Is(err, ErrInvalidID):
		RespondError(c, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, "Invalid request payload")
	case errors.Is(err, ErrInvalidStatus):
		RespondError(c, http.StatusBadRequest, "Status must be one of: pending, approved, rejected")
	case errors.Is(err, ErrInvalidGeoJSON):
		RespondError(c, http.StatusBadRequest, "Invalid GeoJSON format.")
	case errors.Is(err, ErrMissingFile):
		RespondError(c, http.StatusBadRequest, "No file uploaded.")
	case errors.Is(err, ErrOutOfRegion):
		RespondError(c, http.StatusBadRequest, "The location is outside the North Western Province.")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrFeedbackNotFound):
		RespondError(c, http.StatusNotFound, "Feedback not found")
	case errors.Is(err, ErrUpload):
		log.Error("image upload error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Failed to upload image.")
	case errors.Is(err, ErrBoundaryUnavailable):
		log.Error("boundary unavailable", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Province boundary data not loaded.")
	case errors.Is(err, ErrDatabaseError):
		log.Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error("unknown error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
