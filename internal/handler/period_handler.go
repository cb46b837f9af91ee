package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tumentor/tumentor-api/internal/models"
	"github.com/tumentor/tumentor-api/internal/service"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
	"github.com/tumentor/tumentor-api/pkg/response"
)

// PeriodHandler exposes academic period read endpoints.
type PeriodHandler struct {
	periods *service.PeriodService
	metrics *service.MetricsService
}

// NewPeriodHandler constructs PeriodHandler.
func NewPeriodHandler(periods *service.PeriodService, metrics *service.MetricsService) *PeriodHandler {
	return &PeriodHandler{periods: periods, metrics: metrics}
}

// List godoc
// @Summary List academic periods
// @Tags Calendar
// @Produce json
// @Param year query int false "Filter by year"
// @Param seasonId query string false "Filter by season"
// @Param includeSpecials query bool false "Include special weeks"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	var filter models.PeriodFilter
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}
	filter.SeasonID = c.Query("seasonId")
	filter.IncludeSpecials = c.DefaultQuery("includeSpecials", "true") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	periods, pagination, err := h.periods.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, pagination)
}

// Current godoc
// @Summary Resolve the period applying now
// @Description Returns the period containing the reference instant, the nearest future one, or a synthetic default period
// @Tags Calendar
// @Produce json
// @Param now query string false "Reference instant, RFC 3339"
// @Success 200 {object} response.Envelope
// @Router /periods/current [get]
func (h *PeriodHandler) Current(c *gin.Context) {
	now, err := requestTime(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "now must be RFC 3339"))
		return
	}

	period, usingDefault, err := h.periods.CurrentOrNext(c.Request.Context(), now)
	if err != nil {
		response.Error(c, err)
		return
	}
	if usingDefault {
		h.metrics.RecordDefaultPeriodUse()
	}
	response.JSON(c, http.StatusOK, period, nil)
}

// Get godoc
// @Summary Get a period by ID
// @Tags Calendar
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /periods/{id} [get]
func (h *PeriodHandler) Get(c *gin.Context) {
	period, err := h.periods.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, period, nil)
}

// Seasons godoc
// @Summary List a year's seasons
// @Tags Calendar
// @Produce json
// @Param year query int true "Calendar year"
// @Success 200 {object} response.Envelope
// @Router /seasons [get]
func (h *PeriodHandler) Seasons(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year is required"))
		return
	}
	seasons, err := h.periods.Seasons(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, seasons, nil)
}
