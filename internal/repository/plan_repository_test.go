package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tumentor/tumentor-api/internal/models"
)

func planRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "price", "allow_proration", "active", "created_at", "updated_at"})
	for _, id := range ids {
		rows.AddRow(id, "Plan Estándar", "100.00", true, true, time.Now(), time.Now())
	}
	return rows
}

func TestPlanRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	active := true
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price, allow_proration, active, created_at, updated_at FROM plans WHERE 1=1 AND active = $1 ORDER BY name ASC LIMIT 20 OFFSET 0")).
		WithArgs(true).
		WillReturnRows(planRows("plan-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM plans WHERE 1=1 AND active = $1")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	plans, total, err := repo.List(context.Background(), models.PlanFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Equal(t, 1, total)
	require.True(t, plans[0].Price.Equal(decimal.NewFromInt(100)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price, allow_proration, active, created_at, updated_at FROM plans WHERE id = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO plans")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	plan := &models.Plan{Name: "Plan Intensivo", Price: decimal.NewFromInt(150), AllowProration: true, Active: true}
	require.NoError(t, repo.Create(context.Background(), plan))
	require.NotEmpty(t, plan.ID)
	require.False(t, plan.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE plans SET active = FALSE, updated_at = $2 WHERE id = $1")).
		WithArgs("plan-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "plan-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
