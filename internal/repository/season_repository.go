package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tumentor/tumentor-api/internal/models"
)

// SeasonRepository handles persistence for seasons.
type SeasonRepository struct {
	db *sqlx.DB
}

// NewSeasonRepository instantiates a season repository.
func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// ListByYear returns a year's seasons ordered by start date.
func (r *SeasonRepository) ListByYear(ctx context.Context, year int) ([]models.Season, error) {
	const query = `SELECT id, name, year, start_date, end_date, created_at, updated_at FROM seasons WHERE year = $1 ORDER BY start_date ASC`
	var seasons []models.Season
	if err := r.db.SelectContext(ctx, &seasons, query, year); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

// FindByID loads a season by identifier.
func (r *SeasonRepository) FindByID(ctx context.Context, id string) (*models.Season, error) {
	const query = `SELECT id, name, year, start_date, end_date, created_at, updated_at FROM seasons WHERE id = $1`
	var season models.Season
	if err := r.db.GetContext(ctx, &season, query, id); err != nil {
		return nil, err
	}
	return &season, nil
}
