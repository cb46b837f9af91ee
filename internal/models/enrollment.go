package models

import "time"

// EnrollmentStatus tracks the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCancelled EnrollmentStatus = "CANCELLED"
)

// Enrollment binds a student to a plan with a weekly class schedule.
// The schedule slots are stored in canonical UTC; Timezone records the
// teacher zone the student originally picked the times in.
type Enrollment struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"student_id"`
	PlanID    string           `db:"plan_id" json:"plan_id"`
	PeriodID  string           `db:"period_id" json:"period_id"`
	Timezone  string           `db:"timezone" json:"timezone"`
	Status    EnrollmentStatus `db:"status" json:"status"`
	StartsAt  time.Time        `db:"starts_at" json:"starts_at"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// EnrollmentSlot is one persisted weekly slot of an enrollment, in UTC.
type EnrollmentSlot struct {
	ID           string `db:"id" json:"id"`
	EnrollmentID string `db:"enrollment_id" json:"enrollment_id"`
	DayOfWeek    int    `db:"day_of_week" json:"day_of_week"`
	StartTime    string `db:"start_time" json:"start_time"`
	EndTime      string `db:"end_time" json:"end_time"`
}

// EnrollmentDetail joins an enrollment with its stored schedule.
type EnrollmentDetail struct {
	Enrollment
	Schedule ClassSchedule `json:"schedule"`
}
