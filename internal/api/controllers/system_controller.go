package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nwptourism/internal/models/response_models"
	"nwptourism/pkg/utils"
)

type BoundaryDocument interface {
	Loaded() bool
	GeoJSON() []byte
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type SystemController struct {
	boundary BoundaryDocument
	db       Pinger
	log      *zap.Logger
}

func NewSystemController(boundary BoundaryDocument, db Pinger, log *zap.Logger) *SystemController {
	return &SystemController{boundary: boundary, db: db, log: log}
}

// Health reports liveness plus the two things every write depends on.
func (s *SystemController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	res := response_models.Health{
		Status:         "ok",
		BoundaryLoaded: s.boundary.Loaded(),
		Database:       "ok",
	}
	if err := s.db.PingContext(ctx); err != nil {
		s.log.Warn("health check: database ping failed", zap.Error(err))
		res.Database = "unavailable"
		res.Status = "degraded"
	}
	if !res.BoundaryLoaded {
		res.Status = "degraded"
	}

	code := http.StatusOK
	if res.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, utils.APIResponse{
		Success: code == http.StatusOK,
		Code:    code,
		TraceID: c.GetString("trace_id"),
		Data:    res,
	})
}

// Boundary serves the province outline used by the map pages.
func (s *SystemController) Boundary(c *gin.Context) {
	if !s.boundary.Loaded() {
		utils.HandleServiceError(c, s.log, utils.ErrBoundaryUnavailable)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", s.boundary.GeoJSON())
}
