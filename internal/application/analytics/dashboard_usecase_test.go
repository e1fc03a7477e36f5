package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

type fakeStatsRepo struct {
	from, to time.Time
	limit    int
	topErr   error
}

func (f *fakeStatsRepo) GetTotals(_ context.Context, from, to time.Time) (repository.PayrollTotals, error) {
	f.from, f.to = from, to
	return repository.PayrollTotals{
		Paid:          decimal.RequireFromString("1500000.456"),
		Discounts:     decimal.NewFromInt(50000),
		Advances:      decimal.NewFromInt(100000),
		PaymentsCount: 3,
	}, nil
}

func (f *fakeStatsRepo) CountActiveEmployees(context.Context) (int, error) { return 7, nil }

func (f *fakeStatsRepo) PendingAdvancesTotal(context.Context) (decimal.Decimal, error) {
	return decimal.NewFromInt(20000), nil
}

func (f *fakeStatsRepo) TopEmployees(_ context.Context, _, _ time.Time, limit int) ([]repository.EmployeeNetResult, error) {
	f.limit = limit
	if f.topErr != nil {
		return nil, f.topErr
	}
	return []repository.EmployeeNetResult{
		{EmployeeID: "e1", FullName: "Ana Gómez", NetPaid: decimal.NewFromInt(900000), Payments: 2},
	}, nil
}

func TestGetStatistics_MonthRangeAndTotals(t *testing.T) {
	repo := &fakeStatsRepo{}
	uc := NewStatisticsUseCase(repo)
	uc.now = func() time.Time { return time.Date(2026, time.October, 15, 10, 30, 0, 0, time.UTC) }

	got, err := uc.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), repo.to)
	assert.Equal(t, dashboardTopEmployees, repo.limit)

	assert.Equal(t, "1500000.46", got.MonthPaid.String())
	assert.Equal(t, 3, got.MonthPayments)
	assert.Equal(t, 7, got.ActiveEmployees)
	assert.True(t, got.PendingAdvances.Equal(decimal.NewFromInt(20000)))
	require.Len(t, got.TopEmployees, 1)
	assert.Equal(t, "Ana Gómez", got.TopEmployees[0].FullName)
	assert.Equal(t, "Octubre 2026", got.DateLabel)
}

func TestGetStatistics_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	uc := NewStatisticsUseCase(&fakeStatsRepo{topErr: boom})

	_, err := uc.GetStatistics(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Enero 2026", monthLabel(time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
