package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tumentor/tumentor-api/internal/models"
)

const periodColumns = "id, name, year, season_id, start_date, end_date, is_special_week, is_active, created_at, updated_at"

// PeriodRepository handles persistence for academic periods.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository instantiates a period repository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// List returns periods matching provided filters ordered by start date.
func (r *PeriodRepository) List(ctx context.Context, filter models.PeriodFilter) ([]models.AcademicPeriod, int, error) {
	base := "FROM academic_periods WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.SeasonID != "" {
		conditions = append(conditions, fmt.Sprintf("season_id = $%d", len(args)+1))
		args = append(args, filter.SeasonID)
	}
	if !filter.IncludeSpecials {
		conditions = append(conditions, "is_special_week = FALSE")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY start_date ASC LIMIT %d OFFSET %d", periodColumns, base, size, offset)

	var periods []models.AcademicPeriod
	if err := r.db.SelectContext(ctx, &periods, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list periods: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count periods: %w", err)
	}

	return periods, total, nil
}

// FindByID loads a period by identifier.
func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_periods WHERE id = $1", periodColumns)
	var period models.AcademicPeriod
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// Overlapping returns regular periods whose range intersects the given
// UTC day window, most recently started first. Special weeks are
// excluded: billing cycles anchor on regular periods only.
func (r *PeriodRepository) Overlapping(ctx context.Context, dayStart, dayEnd time.Time) ([]models.AcademicPeriod, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_periods WHERE start_date <= $1 AND end_date >= $2 AND is_special_week = FALSE ORDER BY start_date DESC", periodColumns)
	var periods []models.AcademicPeriod
	if err := r.db.SelectContext(ctx, &periods, query, dayEnd, dayStart); err != nil {
		return nil, fmt.Errorf("find overlapping periods: %w", err)
	}
	return periods, nil
}

// FirstStartingAfter returns the earliest regular period starting
// strictly after the given instant.
func (r *PeriodRepository) FirstStartingAfter(ctx context.Context, after time.Time) (*models.AcademicPeriod, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_periods WHERE start_date > $1 AND is_special_week = FALSE ORDER BY start_date ASC LIMIT 1", periodColumns)
	var period models.AcademicPeriod
	if err := r.db.GetContext(ctx, &period, query, after); err != nil {
		return nil, err
	}
	return &period, nil
}

// ReplaceYear swaps the stored calendar for a year with a freshly
// generated one inside a single transaction.
func (r *PeriodRepository) ReplaceYear(ctx context.Context, year int, seasons []models.Season, periods []models.AcademicPeriod) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace year tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM academic_periods WHERE year = $1`, year); err != nil {
		return fmt.Errorf("delete periods for year: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seasons WHERE year = $1`, year); err != nil {
		return fmt.Errorf("delete seasons for year: %w", err)
	}

	now := time.Now().UTC()
	for i := range seasons {
		if seasons[i].ID == "" {
			seasons[i].ID = uuid.NewString()
		}
		seasons[i].CreatedAt = now
		seasons[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO seasons (id, name, year, start_date, end_date, created_at, updated_at) VALUES (:id, :name, :year, :start_date, :end_date, :created_at, :updated_at)`, seasons[i]); err != nil {
			return fmt.Errorf("insert season %s: %w", seasons[i].Name, err)
		}
	}

	for i := range periods {
		if periods[i].ID == "" {
			periods[i].ID = uuid.NewString()
		}
		periods[i].CreatedAt = now
		periods[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO academic_periods (id, name, year, season_id, start_date, end_date, is_special_week, is_active, created_at, updated_at) VALUES (:id, :name, :year, :season_id, :start_date, :end_date, :is_special_week, :is_active, :created_at, :updated_at)`, periods[i]); err != nil {
			return fmt.Errorf("insert period %s: %w", periods[i].Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace year tx: %w", err)
	}
	return nil
}
