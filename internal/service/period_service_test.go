package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumentor/tumentor-api/internal/models"
)

type mockPeriodRepo struct {
	overlapping []models.AcademicPeriod
	next        *models.AcademicPeriod

	overlappingErr error
	nextErr        error
}

func (m *mockPeriodRepo) List(ctx context.Context, filter models.PeriodFilter) ([]models.AcademicPeriod, int, error) {
	return m.overlapping, len(m.overlapping), nil
}

func (m *mockPeriodRepo) FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	for _, p := range m.overlapping {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPeriodRepo) Overlapping(ctx context.Context, dayStart, dayEnd time.Time) ([]models.AcademicPeriod, error) {
	if m.overlappingErr != nil {
		return nil, m.overlappingErr
	}
	return m.overlapping, nil
}

func (m *mockPeriodRepo) FirstStartingAfter(ctx context.Context, after time.Time) (*models.AcademicPeriod, error) {
	if m.nextErr != nil {
		return nil, m.nextErr
	}
	if m.next == nil {
		return nil, sql.ErrNoRows
	}
	return m.next, nil
}

type mockSeasonRepo struct {
	seasons []models.Season
}

func (m *mockSeasonRepo) ListByYear(ctx context.Context, year int) ([]models.Season, error) {
	return m.seasons, nil
}

func TestCurrentOrNextPicksLatestStart(t *testing.T) {
	// Two regular periods overlap around a month boundary; the one that
	// started most recently wins.
	older := models.AcademicPeriod{
		ID:        "p-old",
		Name:      "Período Abril 2025",
		StartDate: day(2025, time.April, 7),
		EndDate:   day(2025, time.May, 4),
	}
	newer := models.AcademicPeriod{
		ID:        "p-new",
		Name:      "Período Mayo 2025",
		StartDate: day(2025, time.May, 4),
		EndDate:   day(2025, time.May, 31),
	}
	repo := &mockPeriodRepo{overlapping: []models.AcademicPeriod{newer, older}}
	svc := NewPeriodService(repo, &mockSeasonRepo{}, nil, 0, nil)

	period, usingDefault, err := svc.CurrentOrNext(context.Background(), day(2025, time.May, 4))
	require.NoError(t, err)
	assert.False(t, usingDefault)
	assert.Equal(t, "p-new", period.ID)
}

func TestCurrentOrNextFallsForwardToNext(t *testing.T) {
	next := models.AcademicPeriod{
		ID:        "p-next",
		Name:      "Período Julio 2025",
		StartDate: day(2025, time.July, 7),
		EndDate:   day(2025, time.August, 3),
	}
	repo := &mockPeriodRepo{next: &next}
	svc := NewPeriodService(repo, &mockSeasonRepo{}, nil, 0, nil)

	period, usingDefault, err := svc.CurrentOrNext(context.Background(), day(2025, time.July, 2))
	require.NoError(t, err)
	assert.False(t, usingDefault)
	assert.Equal(t, "p-next", period.ID)
}

func TestCurrentOrNextSynthesizesDefault(t *testing.T) {
	repo := &mockPeriodRepo{}
	svc := NewPeriodService(repo, &mockSeasonRepo{}, nil, 0, nil)

	now := day(2030, time.March, 15)
	period, usingDefault, err := svc.CurrentOrNext(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, usingDefault)
	assert.True(t, period.IsDefault)
	assert.Equal(t, "Período por defecto", period.Name)
	assert.Equal(t, now, period.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 28), period.EndDate)
}

func TestCurrentOrNextPropagatesStoreErrors(t *testing.T) {
	repo := &mockPeriodRepo{overlappingErr: errors.New("connection refused")}
	svc := NewPeriodService(repo, &mockSeasonRepo{}, nil, 0, nil)

	period, _, err := svc.CurrentOrNext(context.Background(), day(2025, time.May, 4))
	assert.Error(t, err)
	assert.Nil(t, period)

	repo = &mockPeriodRepo{nextErr: errors.New("connection refused")}
	svc = NewPeriodService(repo, &mockSeasonRepo{}, nil, 0, nil)

	period, _, err = svc.CurrentOrNext(context.Background(), day(2025, time.May, 4))
	assert.Error(t, err)
	assert.Nil(t, period)
}

type mockCalendarCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func (m *mockCalendarCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.gets++
	return errors.New("cache miss")
}

func (m *mockCalendarCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.sets++
	return nil
}

func TestPeriodServiceListMemoizesYearQueries(t *testing.T) {
	repo := &mockPeriodRepo{overlapping: []models.AcademicPeriod{{ID: "p1", Year: 2025}}}
	cache := &mockCalendarCache{}
	svc := NewPeriodService(repo, &mockSeasonRepo{}, cache, time.Hour, nil)

	periods, pagination, err := svc.List(context.Background(), models.PeriodFilter{Year: 2025})
	require.NoError(t, err)
	assert.Len(t, periods, 1)
	assert.Equal(t, 1, pagination.TotalCount)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets)

	// Unfiltered listings bypass the cache.
	_, _, err = svc.List(context.Background(), models.PeriodFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.gets)
}

func TestPeriodServiceGet(t *testing.T) {
	repo := &mockPeriodRepo{overlapping: []models.AcademicPeriod{{ID: "p1", Name: "Período Enero 2025"}}}
	svc := NewPeriodService(repo, &mockSeasonRepo{}, nil, 0, nil)

	period, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Período Enero 2025", period.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.Error(t, err)
}
