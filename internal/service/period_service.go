package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
)

// defaultPeriodName labels the synthetic fallback period used when no
// real academic period covers or follows "now".
const defaultPeriodName = "Período por defecto"

type periodRepository interface {
	List(ctx context.Context, filter models.PeriodFilter) ([]models.AcademicPeriod, int, error)
	FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error)
	Overlapping(ctx context.Context, dayStart, dayEnd time.Time) ([]models.AcademicPeriod, error)
	FirstStartingAfter(ctx context.Context, after time.Time) (*models.AcademicPeriod, error)
}

type seasonReader interface {
	ListByYear(ctx context.Context, year int) ([]models.Season, error)
}

type calendarCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PeriodService reads the academic calendar and resolves the period
// that applies to a given instant.
type PeriodService struct {
	periods  periodRepository
	seasons  seasonReader
	cache    calendarCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPeriodService creates a period service instance.
func NewPeriodService(periods periodRepository, seasons seasonReader, cache calendarCache, cacheTTL time.Duration, logger *zap.Logger) *PeriodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodService{periods: periods, seasons: seasons, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns paginated periods, memoizing full-year pages in Redis.
func (s *PeriodService) List(ctx context.Context, filter models.PeriodFilter) ([]models.AcademicPeriod, *models.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}

	type cached struct {
		Periods []models.AcademicPeriod `json:"periods"`
		Total   int                     `json:"total"`
	}

	cacheKey := ""
	if s.cache != nil && filter.Year != 0 && filter.SeasonID == "" {
		cacheKey = fmt.Sprintf("calendar:%d:periods:%v:%d:%d", filter.Year, filter.IncludeSpecials, page, size)
		var hit cached
		if err := s.cache.Get(ctx, cacheKey, &hit); err == nil {
			return hit.Periods, &models.Pagination{Page: page, PageSize: size, TotalCount: hit.Total}, nil
		}
	}

	periods, total, err := s.periods.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list periods")
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, cached{Periods: periods, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache period list", zap.Error(err))
		}
	}

	return periods, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Seasons returns a year's seasons.
func (s *PeriodService) Seasons(ctx context.Context, year int) ([]models.Season, error) {
	seasons, err := s.seasons.ListByYear(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list seasons")
	}
	return seasons, nil
}

// CurrentOrNext resolves the period that applies to "now".
//
// Resolution goes by live date-range containment against UTC day
// boundaries, never by the stored is_active flag, which can go stale.
// When several regular periods contain now (month-boundary overlap),
// the most recently started one wins. With no containing period the
// nearest future period is used; with none of those either, a
// synthetic 28-day default period starting at now is returned and the
// second result is true, which disables proration downstream.
//
// Store failures propagate as errors; the default period substitutes
// only for "nothing found", never for a failed lookup.
func (s *PeriodService) CurrentOrNext(ctx context.Context, now time.Time) (*models.AcademicPeriod, bool, error) {
	dayStart := startOfDayUTC(now)
	dayEnd := endOfDayUTC(now)

	candidates, err := s.periods.Overlapping(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query current period")
	}
	if len(candidates) > 0 {
		current := candidates[0]
		for _, candidate := range candidates[1:] {
			if candidate.StartDate.After(current.StartDate) {
				current = candidate
			}
		}
		return &current, false, nil
	}

	next, err := s.periods.FirstStartingAfter(ctx, dayEnd)
	if err == nil {
		return next, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query next period")
	}

	fallback := &models.AcademicPeriod{
		Name:      defaultPeriodName,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, regularPeriodDays),
		IsDefault: true,
	}
	s.logger.Info("no academic period covers or follows now, using default period",
		zap.Time("now", now),
		zap.Time("until", fallback.EndDate),
	)
	return fallback, true, nil
}

// Get returns a period by ID.
func (s *PeriodService) Get(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	period, err := s.periods.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load period")
	}
	return period, nil
}
