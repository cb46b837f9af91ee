package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProrationResult is the computed pricing breakdown for enrolling into
// a plan mid-period. It is never persisted; ownership stays with the
// caller of the proration service.
type ProrationResult struct {
	PlanID                   string          `json:"plan_id"`
	PlanName                 string          `json:"plan_name"`
	OriginalPrice            decimal.Decimal `json:"original_price"`
	ProratedPrice            decimal.Decimal `json:"prorated_price"`
	ClassesFromNow           int             `json:"classes_from_now"`
	TotalClassesInFullPeriod int             `json:"total_classes_in_full_period"`
	ClassesPerWeek           int             `json:"classes_per_week"`
	PeriodName               string          `json:"period_name"`
	PeriodStart              time.Time       `json:"period_start"`
	PeriodEnd                time.Time       `json:"period_end"`
	EnrollmentStart          time.Time       `json:"enrollment_start"`
	DaysRemaining            int             `json:"days_remaining"`
	WeeksRemaining           int             `json:"weeks_remaining"`
	AllowProration           bool            `json:"allow_proration"`
	Schedule                 ClassSchedule   `json:"schedule"`
}
