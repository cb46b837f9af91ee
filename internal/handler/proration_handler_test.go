package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tumentor/tumentor-api/internal/models"
	"github.com/tumentor/tumentor-api/internal/service"
)

type planReaderStub struct {
	plan *models.Plan
}

func (s *planReaderStub) FindByID(ctx context.Context, id string) (*models.Plan, error) {
	if s.plan != nil && s.plan.ID == id {
		return s.plan, nil
	}
	return nil, sql.ErrNoRows
}

type periodLocatorStub struct {
	period *models.AcademicPeriod
}

func (s *periodLocatorStub) CurrentOrNext(ctx context.Context, now time.Time) (*models.AcademicPeriod, bool, error) {
	return s.period, false, nil
}

func newProrationHandler() *ProrationHandler {
	plans := &planReaderStub{plan: &models.Plan{
		ID:             "plan-1",
		Name:           "Plan Estándar",
		Price:          decimal.NewFromInt(100),
		AllowProration: true,
		Active:         true,
	}}
	periods := &periodLocatorStub{period: &models.AcademicPeriod{
		ID:        "p-ene",
		Name:      "Período Enero 2025",
		StartDate: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC),
	}}
	svc := service.NewProrationService(plans, periods, nil, nil)
	return NewProrationHandler(svc, nil)
}

func TestProrationHandlerCalculate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProrationHandler()

	payload := []byte(`{
		"plan_id": "plan-1",
		"schedule": [
			{"day_of_week": 1, "start_time": "10:00", "end_time": "11:00"},
			{"day_of_week": 3, "start_time": "18:00", "end_time": "19:00"}
		]
	}`)
	req, _ := http.NewRequest(http.MethodPost, "/pricing/proration?now=2025-01-15T00:00:00Z", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Calculate(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.ProrationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "62.5", envelope.Data.ProratedPrice.String())
	require.Equal(t, 5, envelope.Data.ClassesFromNow)
	require.Equal(t, 8, envelope.Data.TotalClassesInFullPeriod)
}

func TestProrationHandlerInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProrationHandler()

	req, _ := http.NewRequest(http.MethodPost, "/pricing/proration", bytes.NewReader([]byte(`{"plan_id":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Calculate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProrationHandlerUnknownPlan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProrationHandler()

	payload := []byte(`{"plan_id": "ghost", "schedule": [{"day_of_week": 1, "start_time": "10:00", "end_time": "11:00"}]}`)
	req, _ := http.NewRequest(http.MethodPost, "/pricing/proration", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Calculate(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProrationHandlerBadNow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProrationHandler()

	payload := []byte(`{"plan_id": "plan-1", "schedule": [{"day_of_week": 1, "start_time": "10:00", "end_time": "11:00"}]}`)
	req, _ := http.NewRequest(http.MethodPost, "/pricing/proration?now=yesterday", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Calculate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
