package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
)

type planReader interface {
	FindByID(ctx context.Context, id string) (*models.Plan, error)
}

type periodLocator interface {
	CurrentOrNext(ctx context.Context, now time.Time) (*models.AcademicPeriod, bool, error)
}

// ProrationRequest is the pricing request for enrolling into a plan
// with a weekly schedule.
type ProrationRequest struct {
	PlanID   string               `json:"plan_id" validate:"required"`
	Schedule models.ClassSchedule `json:"schedule" validate:"required,min=1"`
}

// ProrationService prices an enrollment against the current academic
// period, charging only for the class days remaining in it.
type ProrationService struct {
	plans     planReader
	periods   periodLocator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProrationService creates a proration service instance.
func NewProrationService(plans planReader, periods periodLocator, validate *validator.Validate, logger *zap.Logger) *ProrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProrationService{plans: plans, periods: periods, validator: validate, logger: logger}
}

// Calculate computes the prorated price for the plan and schedule as of
// now.
//
// The prorated price is basePrice / totalOccurrences × occurrencesFromNow,
// rounded half-up at the cent. The full price applies instead when the
// plan disables proration, when the schedule produces no occurrences in
// the period (which also keeps the division structurally safe), or when
// only the synthetic default period was available to anchor against.
func (s *ProrationService) Calculate(ctx context.Context, now time.Time, req ProrationRequest) (*models.ProrationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid proration payload")
	}
	if err := validateSchedule(req.Schedule); err != nil {
		return nil, err
	}

	plan, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan")
	}

	period, usingDefault, err := s.periods.CurrentOrNext(ctx, now)
	if err != nil {
		return nil, err
	}

	enrollmentStart := now
	if period.StartDate.After(now) {
		enrollmentStart = period.StartDate
	}

	totalOccurrences := CountOccurrences(period.StartDate, period.EndDate, req.Schedule)
	occurrencesFromNow := CountOccurrences(enrollmentStart, period.EndDate, req.Schedule)

	proratedPrice := plan.Price
	applied := false
	if plan.AllowProration && totalOccurrences > 0 && !usingDefault {
		proratedPrice = plan.Price.
			Div(decimal.NewFromInt(int64(totalOccurrences))).
			Mul(decimal.NewFromInt(int64(occurrencesFromNow))).
			Round(2)
		applied = true
	}

	daysRemaining := int(math.Ceil(period.EndDate.Sub(enrollmentStart).Hours() / 24))
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	weeksRemaining := (daysRemaining + 6) / 7

	return &models.ProrationResult{
		PlanID:                   plan.ID,
		PlanName:                 plan.Name,
		OriginalPrice:            plan.Price,
		ProratedPrice:            proratedPrice,
		ClassesFromNow:           occurrencesFromNow,
		TotalClassesInFullPeriod: totalOccurrences,
		ClassesPerWeek:           len(req.Schedule.Weekdays()),
		PeriodName:               period.Name,
		PeriodStart:              period.StartDate,
		PeriodEnd:                period.EndDate,
		EnrollmentStart:          enrollmentStart,
		DaysRemaining:            daysRemaining,
		WeeksRemaining:           weeksRemaining,
		AllowProration:           applied,
		Schedule:                 req.Schedule,
	}, nil
}

// validateSchedule checks slot day and time shapes. Overlap rules
// between slots are the caller's responsibility.
func validateSchedule(schedule models.ClassSchedule) error {
	for i, slot := range schedule {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule[%d]: day_of_week must be between 0 (Sunday) and 6 (Saturday)", i))
		}
		if _, _, err := parseClock(slot.StartTime); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule[%d]: invalid start_time %q", i, slot.StartTime))
		}
		if _, _, err := parseClock(slot.EndTime); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule[%d]: invalid end_time %q", i, slot.EndTime))
		}
	}
	return nil
}
