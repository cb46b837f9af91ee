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

// PlanHandler exposes plan endpoints.
type PlanHandler struct {
	plans *service.PlanService
}

// NewPlanHandler constructs PlanHandler.
func NewPlanHandler(plans *service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// List godoc
// @Summary List plans
// @Tags Plans
// @Produce json
// @Param activeOnly query bool false "Only active plans"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	var filter models.PlanFilter
	switch c.Query("active") {
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	plans, pagination, err := h.plans.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, pagination)
}

// Get godoc
// @Summary Get a plan by ID
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// Create godoc
// @Summary Create a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body service.CreatePlanRequest true "Plan payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req service.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// Deactivate godoc
// @Summary Deactivate a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /plans/{id} [delete]
func (h *PlanHandler) Deactivate(c *gin.Context) {
	if err := h.plans.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
