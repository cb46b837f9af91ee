package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumentor/tumentor-api/internal/models"
)

func exportFixture() (*mockPeriodRepo, *mockSeasonRepo) {
	periods := &mockPeriodRepo{overlapping: []models.AcademicPeriod{
		{
			ID:        "p-ene",
			Name:      "Período Enero 2025",
			Year:      2025,
			SeasonID:  "sea-1",
			StartDate: day(2025, time.January, 6),
			EndDate:   day(2025, time.February, 2),
		},
		{
			ID:            "p-esp",
			Name:          "Semana especial del 31/03",
			Year:          2025,
			SeasonID:      "sea-1",
			StartDate:     day(2025, time.March, 31),
			EndDate:       day(2025, time.April, 6),
			IsSpecialWeek: true,
		},
	}}
	seasons := &mockSeasonRepo{seasons: []models.Season{
		{ID: "sea-1", Name: "Verano", Year: 2025},
	}}
	return periods, seasons
}

func TestExportCalendarCSV(t *testing.T) {
	periods, seasons := exportFixture()
	svc := NewExportService(periods, seasons, nil)

	result, err := svc.ExportCalendar(context.Background(), 2025, ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "calendario-2025.csv", result.FileName)

	body := string(result.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Periodo")
	assert.Contains(t, lines[1], "Período Enero 2025")
	assert.Contains(t, lines[1], "28")
	assert.Contains(t, lines[2], "Semana especial")
	assert.Contains(t, lines[2], "Verano")
	assert.Contains(t, lines[2], "7")
}

func TestExportCalendarPDF(t *testing.T) {
	periods, seasons := exportFixture()
	svc := NewExportService(periods, seasons, nil)

	result, err := svc.ExportCalendar(context.Background(), 2025, ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "calendario-2025.pdf", result.FileName)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
}

func TestExportCalendarRejectsUnknownFormat(t *testing.T) {
	periods, seasons := exportFixture()
	svc := NewExportService(periods, seasons, nil)

	_, err := svc.ExportCalendar(context.Background(), 2025, "xlsx")
	assert.Error(t, err)
}

func TestExportCalendarEmptyYear(t *testing.T) {
	svc := NewExportService(&mockPeriodRepo{}, &mockSeasonRepo{}, nil)

	_, err := svc.ExportCalendar(context.Background(), 2031, ExportFormatCSV)
	assert.Error(t, err)
}
