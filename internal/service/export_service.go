package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
	"github.com/unipanel/exam-planner-api/pkg/export"
)

// Export formats supported by the schedule export endpoint.
const (
	ExportFormatPDF = "pdf"
	ExportFormatCSV = "csv"
)

type scheduleReader interface {
	Get(ctx context.Context, id string) (*models.ExamScheduleDetail, error)
}

// ExportResult carries rendered bytes plus the HTTP metadata to serve them.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders exam schedules as downloadable documents.
type ExportService struct {
	schedules scheduleReader
	pdf       *export.PDFExporter
	csv       *export.CSVExporter
	logger    *zap.Logger
}

// NewExportService wires the exporters to the schedule read model.
func NewExportService(schedules scheduleReader, pdf *export.PDFExporter, csv *export.CSVExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, pdf: pdf, csv: csv, logger: logger}
}

// ExportSchedule renders one schedule's course table in the requested format.
func (s *ExportService) ExportSchedule(ctx context.Context, scheduleID, format string) (*ExportResult, error) {
	detail, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	data := scheduleDataset(detail)

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("exam-schedule-%s.csv", detail.ID),
		}, nil
	case ExportFormatPDF:
		subtitles := []string{
			fmt.Sprintf("Faculty: %s", detail.FacultyName),
			fmt.Sprintf("Period: %s to %s", detail.StartDate.Format("2006-01-02"), detail.EndDate.Format("2006-01-02")),
			fmt.Sprintf("Assistants: %d (max %d classes each)", detail.AssistantCount, detail.MaxClassesPerAssistant),
		}
		content, err := s.pdf.Render(data, detail.Title, subtitles...)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("exam-schedule-%s.pdf", detail.ID),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func scheduleDataset(detail *models.ExamScheduleDetail) export.Dataset {
	headers := []string{"Course", "Code", "Credit", "Duration (min)", "Students"}
	rows := make([]map[string]string, 0, len(detail.CourseExams))
	for _, exam := range detail.CourseExams {
		rows = append(rows, map[string]string{
			"Course":         exam.CourseName,
			"Code":           exam.CourseCode,
			"Credit":         strconv.Itoa(exam.CourseCredit),
			"Duration (min)": strconv.Itoa(exam.ExamDuration),
			"Students":       strconv.Itoa(exam.StudentCount),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
