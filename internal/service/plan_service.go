package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
)

type planRepository interface {
	List(ctx context.Context, filter models.PlanFilter) ([]models.Plan, int, error)
	FindByID(ctx context.Context, id string) (*models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) error
	Deactivate(ctx context.Context, id string) error
}

// CreatePlanRequest describes payload for creating plans.
type CreatePlanRequest struct {
	Name           string          `json:"name" validate:"required"`
	Price          decimal.Decimal `json:"price" validate:"required"`
	AllowProration bool            `json:"allow_proration"`
}

// PlanService manages subscription plans.
type PlanService struct {
	repo      planRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlanService creates a plan service instance.
func NewPlanService(repo planRepository, validate *validator.Validate, logger *zap.Logger) *PlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated plans.
func (s *PlanService) List(ctx context.Context, filter models.PlanFilter) ([]models.Plan, *models.Pagination, error) {
	plans, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	return plans, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a plan by ID.
func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan")
	}
	return plan, nil
}

// Create adds a new plan.
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*models.Plan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}
	if req.Price.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "price must not be negative")
	}

	plan := &models.Plan{
		Name:           req.Name,
		Price:          req.Price,
		AllowProration: req.AllowProration,
		Active:         true,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create plan")
	}
	return plan, nil
}

// Deactivate disables a plan for new enrollments.
func (s *PlanService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate plan")
	}
	return nil
}
