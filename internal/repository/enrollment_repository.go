package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tumentor/tumentor-api/internal/models"
)

// EnrollmentRepository handles persistence for enrollments and their
// canonical UTC schedule slots.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository instantiates an enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment together with its schedule slots.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment, slots []models.EnrollmentSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create enrollment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now

	const insertEnrollment = `INSERT INTO enrollments (id, student_id, plan_id, period_id, timezone, status, starts_at, created_at, updated_at) VALUES (:id, :student_id, :plan_id, :period_id, :timezone, :status, :starts_at, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertEnrollment, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	const insertSlot = `INSERT INTO enrollment_slots (id, enrollment_id, day_of_week, start_time, end_time) VALUES (:id, :enrollment_id, :day_of_week, :start_time, :end_time)`
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		slots[i].EnrollmentID = enrollment.ID
		if _, err = tx.NamedExecContext(ctx, insertSlot, slots[i]); err != nil {
			return fmt.Errorf("create enrollment slot: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create enrollment tx: %w", err)
	}
	return nil
}

// FindByID loads an enrollment by identifier.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, plan_id, period_id, timezone, status, starts_at, created_at, updated_at FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListSlots returns the stored UTC slots of an enrollment ordered by day and time.
func (r *EnrollmentRepository) ListSlots(ctx context.Context, enrollmentID string) ([]models.EnrollmentSlot, error) {
	const query = `SELECT id, enrollment_id, day_of_week, start_time, end_time FROM enrollment_slots WHERE enrollment_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var slots []models.EnrollmentSlot
	if err := r.db.SelectContext(ctx, &slots, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("list enrollment slots: %w", err)
	}
	return slots, nil
}

// UpdateStatus changes the lifecycle status of an enrollment.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE enrollments SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}
