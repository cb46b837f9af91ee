package models

import "time"

// Season groups a contiguous run of academic periods within a year.
type Season struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Year      int       `db:"year" json:"year"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AcademicPeriod is either a regular 28-day cycle anchored on a month's
// first Monday or a leftover special week. The is_active flag is
// informational only; current-period resolution always goes by date
// range containment.
type AcademicPeriod struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Year          int       `db:"year" json:"year"`
	SeasonID      string    `db:"season_id" json:"season_id"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
	IsSpecialWeek bool      `db:"is_special_week" json:"is_special_week"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	IsDefault     bool      `db:"-" json:"is_default,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Contains reports whether the given instant falls inside the period,
// comparing against UTC day boundaries.
func (p AcademicPeriod) Contains(now time.Time) bool {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, time.UTC)
	return !p.StartDate.After(dayEnd) && !p.EndDate.Before(dayStart)
}

// PeriodFilter describes query params for listing periods.
type PeriodFilter struct {
	Year            int
	SeasonID        string
	IncludeSpecials bool
	Page            int
	PageSize        int
}
