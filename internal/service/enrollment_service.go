package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment, slots []models.EnrollmentSlot) error
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListSlots(ctx context.Context, enrollmentID string) ([]models.EnrollmentSlot, error)
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) error
}

// EnrollStudentRequest describes an enrollment creation payload. The
// schedule times are local to the given teacher timezone.
type EnrollStudentRequest struct {
	StudentID string               `json:"student_id" validate:"required"`
	PlanID    string               `json:"plan_id" validate:"required"`
	Timezone  string               `json:"timezone" validate:"required"`
	Schedule  models.ClassSchedule `json:"schedule" validate:"required,min=1"`
}

// EnrollmentService creates enrollments, converting their weekly
// schedules into canonical UTC storage and back for display.
type EnrollmentService struct {
	repo      enrollmentRepository
	plans     planReader
	periods   periodLocator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService creates an enrollment service instance.
func NewEnrollmentService(repo enrollmentRepository, plans planReader, periods periodLocator, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, plans: plans, periods: periods, validator: validate, logger: logger}
}

// Enroll registers a student on a plan with a weekly schedule.
func (s *EnrollmentService) Enroll(ctx context.Context, now time.Time, req EnrollStudentRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
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
	if !plan.Active {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "plan is not open for enrollment")
	}

	utcSchedule, err := ScheduleToUTC(req.Schedule, req.Timezone)
	if err != nil {
		return nil, err
	}

	period, _, err := s.periods.CurrentOrNext(ctx, now)
	if err != nil {
		return nil, err
	}

	startsAt := now
	if period.StartDate.After(now) {
		startsAt = period.StartDate
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		PlanID:    plan.ID,
		PeriodID:  period.ID,
		Timezone:  req.Timezone,
		Status:    models.EnrollmentStatusActive,
		StartsAt:  startsAt,
	}

	slots := make([]models.EnrollmentSlot, 0, len(utcSchedule))
	for _, slot := range utcSchedule {
		slots = append(slots, models.EnrollmentSlot{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	if err := s.repo.Create(ctx, enrollment, slots); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	return &models.EnrollmentDetail{Enrollment: *enrollment, Schedule: utcSchedule}, nil
}

// Get loads an enrollment, projecting its stored UTC schedule into the
// display timezone (the enrollment's own zone when none is given).
func (s *EnrollmentService) Get(ctx context.Context, id, displayTimezone string) (*models.EnrollmentDetail, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}

	stored, err := s.repo.ListSlots(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment schedule")
	}

	utcSchedule := make(models.ClassSchedule, 0, len(stored))
	for _, slot := range stored {
		utcSchedule = append(utcSchedule, models.ScheduleSlot{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	tz := displayTimezone
	if tz == "" {
		tz = enrollment.Timezone
	}
	schedule, err := ScheduleFromUTC(utcSchedule, tz)
	if err != nil {
		return nil, err
	}

	return &models.EnrollmentDetail{Enrollment: *enrollment, Schedule: schedule}, nil
}

// Cancel marks an enrollment as cancelled.
func (s *EnrollmentService) Cancel(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if err := s.repo.UpdateStatus(ctx, id, models.EnrollmentStatusCancelled); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel enrollment")
	}
	return nil
}
