package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
	"github.com/tumentor/tumentor-api/pkg/export"
)

// Export formats supported by the calendar export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

const exportDateLayout = "2006-01-02"

type exportPeriodReader interface {
	List(ctx context.Context, filter models.PeriodFilter) ([]models.AcademicPeriod, int, error)
}

type exportSeasonReader interface {
	ListByYear(ctx context.Context, year int) ([]models.Season, error)
}

// ExportResult holds rendered export bytes with transport metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders a year's academic calendar as CSV or PDF.
type ExportService struct {
	periods exportPeriodReader
	seasons exportSeasonReader
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService creates an export service instance.
func NewExportService(periods exportPeriodReader, seasons exportSeasonReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		periods: periods,
		seasons: seasons,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// ExportCalendar renders the stored calendar of a year in the requested
// format.
func (s *ExportService) ExportCalendar(ctx context.Context, year int, format string) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if year < 2000 || year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year must be between 2000 and 2100")
	}

	periods, _, err := s.periods.List(ctx, models.PeriodFilter{Year: year, IncludeSpecials: true, Page: 1, PageSize: 100})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load periods for export")
	}
	if len(periods) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no calendar generated for year %d", year))
	}

	seasons, err := s.seasons.ListByYear(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seasons for export")
	}

	seasonNames := make(map[string]string, len(seasons))
	for _, season := range seasons {
		seasonNames[season.ID] = season.Name
	}

	table := export.Table{
		Columns: []string{"Periodo", "Tipo", "Temporada", "Inicio", "Fin", "Días"},
	}
	for _, period := range periods {
		kind := "Regular"
		if period.IsSpecialWeek {
			kind = "Semana especial"
		}
		days := int(period.EndDate.Sub(period.StartDate).Hours()/24) + 1
		table.Rows = append(table.Rows, []string{
			period.Name,
			kind,
			seasonNames[period.SeasonID],
			period.StartDate.Format(exportDateLayout),
			period.EndDate.Format(exportDateLayout),
			fmt.Sprintf("%d", days),
		})
	}

	result := &ExportResult{}
	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		result.Data = data
		result.ContentType = "text/csv"
		result.FileName = fmt.Sprintf("calendario-%d.csv", year)
	case ExportFormatPDF:
		data, err := s.pdf.Render(table, fmt.Sprintf("Calendario académico %d", year))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		result.Data = data
		result.ContentType = "application/pdf"
		result.FileName = fmt.Sprintf("calendario-%d.pdf", year)
	}

	s.logger.Info("calendar exported",
		zap.Int("year", year),
		zap.String("format", format),
		zap.Int("rows", len(table.Rows)),
		zap.Duration("span", periods[len(periods)-1].EndDate.Sub(periods[0].StartDate)),
	)

	return result, nil
}
