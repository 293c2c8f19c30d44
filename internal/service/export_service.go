package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
	"github.com/mnadhif/student-records-api/pkg/export"
)

// ExportResult is a rendered roster document ready to stream.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

type rosterSource interface {
	List(ctx context.Context) ([]models.Student, error)
}

// ExportService renders the student roster as CSV or PDF.
type ExportService struct {
	students rosterSource
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(students rosterSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Render produces the roster in the requested format. An empty format
// defaults to CSV.
func (s *ExportService) Render(ctx context.Context, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("unsupported export format %q", format))
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students for export")
	}

	data := export.Dataset{
		Headers: []string{"Name", "Registration Number", "Major", "Date of Birth", "GPA"},
		Rows:    make([][]string, 0, len(students)),
	}
	for _, st := range students {
		data.Rows = append(data.Rows, []string{
			st.Name,
			st.RegistrationNumber,
			st.Major,
			st.DateOfBirth,
			fmt.Sprintf("%.2f", st.GPA),
		})
	}

	switch format {
	case "pdf":
		content, err := s.pdf.Render(data, "Student Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "students.pdf"}, nil
	default:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "students.csv"}, nil
	}
}
