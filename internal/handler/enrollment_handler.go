package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tumentor/tumentor-api/internal/service"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
	"github.com/tumentor/tumentor-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Create godoc
// @Summary Enroll a student
// @Description Register a student on a plan with a weekly schedule, storing the schedule in UTC
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param now query string false "Reference instant, RFC 3339"
// @Param payload body service.EnrollStudentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	now, err := requestTime(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "now must be RFC 3339"))
		return
	}

	enrollment, err := h.enrollments.Enroll(c.Request.Context(), now, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Get godoc
// @Summary Get an enrollment
// @Description Load an enrollment with its schedule projected into a display timezone
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param tz query string false "Display timezone, IANA name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	enrollment, err := h.enrollments.Get(c.Request.Context(), c.Param("id"), c.Query("tz"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment, nil)
}

// Cancel godoc
// @Summary Cancel an enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	if err := h.enrollments.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
