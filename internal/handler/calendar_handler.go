package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tumentor/tumentor-api/internal/service"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
	"github.com/tumentor/tumentor-api/pkg/response"
)

// CalendarHandler exposes calendar generation and export endpoints.
type CalendarHandler struct {
	generator *service.CalendarGeneratorService
	exporter  *service.ExportService
	metrics   *service.MetricsService
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(generator *service.CalendarGeneratorService, exporter *service.ExportService, metrics *service.MetricsService) *CalendarHandler {
	return &CalendarHandler{generator: generator, exporter: exporter, metrics: metrics}
}

// Generate godoc
// @Summary Generate a year's academic calendar
// @Description Partition a calendar year into periods, special weeks and seasons, replacing any stored calendar for that year
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.GenerateCalendarRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /calendar/generate [post]
func (h *CalendarHandler) Generate(c *gin.Context) {
	var req service.GenerateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	now, err := requestTime(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "now must be RFC 3339"))
		return
	}

	periods, seasons, err := h.generator.Generate(c.Request.Context(), now, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordCalendarGeneration()

	response.JSON(c, http.StatusOK, gin.H{"periods": periods, "seasons": seasons}, nil)
}

// Export godoc
// @Summary Export a year's calendar
// @Description Download the stored calendar as CSV or PDF
// @Tags Calendar
// @Produce text/csv
// @Produce application/pdf
// @Param year query int true "Calendar year"
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /calendar/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year is required"))
		return
	}
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	result, err := h.exporter.ExportCalendar(c.Request.Context(), year, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
