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

// PlanRepository handles persistence for subscription plans.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository instantiates a plan repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// List returns plans matching provided filters.
func (r *PlanRepository) List(ctx context.Context, filter models.PlanFilter) ([]models.Plan, int, error) {
	base := "FROM plans WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
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
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, name, price, allow_proration, active, created_at, updated_at %s ORDER BY name ASC LIMIT %d OFFSET %d", base, size, offset)

	var plans []models.Plan
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list plans: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	return plans, total, nil
}

// FindByID loads a plan by identifier.
func (r *PlanRepository) FindByID(ctx context.Context, id string) (*models.Plan, error) {
	const query = `SELECT id, name, price, allow_proration, active, created_at, updated_at FROM plans WHERE id = $1`
	var plan models.Plan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create inserts a new plan record.
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	const query = `INSERT INTO plans (id, name, price, allow_proration, active, created_at, updated_at) VALUES (:id, :name, :price, :allow_proration, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

// Deactivate soft-disables a plan.
func (r *PlanRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE plans SET active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate plan: %w", err)
	}
	return nil
}
