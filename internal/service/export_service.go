package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/allocatr/psa-api/internal/models"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
	"github.com/allocatr/psa-api/pkg/export"
)

type registrationLister interface {
	ListByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error)
}

// ExportFormats supported by the registration report.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult is a rendered report ready to be served as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a staff member's registration list as a file. The
// role gate rides on the registration listing underneath.
type ExportService struct {
	registrations registrationLister
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	logger        *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(registrations registrationLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		registrations: registrations,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		logger:        logger,
	}
}

// StaffRegistrations renders the registrations on the staff member's
// projects in the requested format.
func (s *ExportService) StaffRegistrations(ctx context.Context, staffID int, format string) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	details, err := s.registrations.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "Project Registrations",
		Columns: []string{"Registration ID", "Project", "Student", "Staff", "State"},
	}
	for _, d := range details {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(d.ID),
			d.ProjectTitle,
			d.StudentName,
			d.StaffName,
			d.State.Description(),
		})
	}

	var data []byte
	contentType := "text/csv"
	switch format {
	case ExportFormatCSV:
		data, err = s.csv.Render(table)
	case ExportFormatPDF:
		contentType = "application/pdf"
		data, err = s.pdf.Render(table)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("registrations exported",
		zap.Int("staff_id", staffID),
		zap.String("format", format),
		zap.Int("rows", len(table.Rows)))

	return &ExportResult{
		Filename:    fmt.Sprintf("registrations-staff-%d.%s", staffID, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}
