package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"nwptourism/internal/models/db_models"
	"nwptourism/internal/repositories"
	"nwptourism/pkg/utils"
)

var csvHeader = []string{"id", "name", "comment", "latitude", "longitude", "image_url", "status", "created_at"}

const pdfTitle = "Tourist Feedback Report"

type ExportServiceInterface interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportPDF(ctx context.Context, w io.Writer) error
}

type ExportService struct {
	feedbackRepo repositories.FeedbackRepositoryInterface
	log          *zap.Logger
}

func NewExportService(feedbackRepo repositories.FeedbackRepositoryInterface, log *zap.Logger) ExportServiceInterface {
	return &ExportService{feedbackRepo: feedbackRepo, log: log.Named("export")}
}

func (s *ExportService) load(ctx context.Context) ([]db_models.Feedback, error) {
	items, err := s.feedbackRepo.ListFeedback(ctx)
	if err != nil {
		s.log.Error("error loading feedback for export", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return items, nil
}

// ExportCSV writes every feedback record, newest first. No rows still
// yields the header line.
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range items {
		if err := cw.Write(feedbackColumns(f)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func feedbackColumns(f db_models.Feedback) []string {
	imageURL := ""
	if f.ImageURL != nil {
		imageURL = *f.ImageURL
	}
	return []string{
		f.ID.String(),
		f.Name,
		f.Comment,
		strconv.FormatFloat(f.Latitude, 'f', -1, 64),
		strconv.FormatFloat(f.Longitude, 'f', -1, 64),
		imageURL,
		string(f.Status),
		utils.FormatRFC3339LK(f.CreatedAt),
	}
}

// ExportPDF renders an A4 report with one block per record.
func (s *ExportService) ExportPDF(ctx context.Context, w io.Writer) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfTitle, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, pdfTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(items) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 8, "No feedback records", "", 1, "L", false, 0, "")
	}

	for i, f := range items {
		cols := feedbackColumns(f)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s", i+1, f.Name)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for j, label := range csvHeader {
			if label == "name" {
				continue
			}
			pdf.MultiCell(0, 5, tr(label+": "+cols[j]), "", "L", false)
		}
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}
