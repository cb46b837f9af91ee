package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tumentor/tumentor-api/internal/service"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
	"github.com/tumentor/tumentor-api/pkg/response"
)

// ProrationHandler exposes the pricing endpoint.
type ProrationHandler struct {
	proration *service.ProrationService
	metrics   *service.MetricsService
}

// NewProrationHandler constructs ProrationHandler.
func NewProrationHandler(proration *service.ProrationService, metrics *service.MetricsService) *ProrationHandler {
	return &ProrationHandler{proration: proration, metrics: metrics}
}

// Calculate godoc
// @Summary Price an enrollment
// @Description Compute the prorated price for a plan and weekly schedule against the period applying now
// @Tags Pricing
// @Accept json
// @Produce json
// @Param now query string false "Reference instant, RFC 3339"
// @Param payload body service.ProrationRequest true "Pricing payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pricing/proration [post]
func (h *ProrationHandler) Calculate(c *gin.Context) {
	var req service.ProrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	now, err := requestTime(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "now must be RFC 3339"))
		return
	}

	result, err := h.proration.Calculate(c.Request.Context(), now, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordProration(result.AllowProration)

	response.JSON(c, http.StatusOK, result, nil)
}
