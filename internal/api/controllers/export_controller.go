package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nwptourism/internal/services"
	"nwptourism/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
	log           *zap.Logger
}

func NewExportController(exportService services.ExportServiceInterface, log *zap.Logger) *ExportController {
	return &ExportController{exportService: exportService, log: log}
}

// ExportCSV godoc
// @Summary Download feedback as CSV
// @Tags Admin
// @Produce text/csv
// @Success 200 {file} file
// @Failure 401 {object} utils.APIResponse
// @Router /admin/export/csv [get]
func (e *ExportController) ExportCSV(c *gin.Context) {
	e.attachment(c, "feedback.csv", "text/csv; charset=utf-8", e.exportService.ExportCSV)
}

// ExportPDF godoc
// @Summary Download feedback as PDF
// @Tags Admin
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 401 {object} utils.APIResponse
// @Router /admin/export/pdf [get]
func (e *ExportController) ExportPDF(c *gin.Context) {
	e.attachment(c, "feedback.pdf", "application/pdf", e.exportService.ExportPDF)
}

// attachment renders into memory first so a failure can still be reported
// as a JSON error instead of a truncated download.
func (e *ExportController) attachment(c *gin.Context, filename, contentType string, render func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := render(c.Request.Context(), &buf); err != nil {
		utils.HandleServiceError(c, e.log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
