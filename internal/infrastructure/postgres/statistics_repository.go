package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas agregadas de solo lectura para el dashboard.
type StatisticsRepo struct {
	q Querier
}

// NewStatisticsRepository construye el adaptador.
func NewStatisticsRepository(q Querier) *StatisticsRepo {
	return &StatisticsRepo{q: q}
}

// GetTotals suma neto, descuentos y adelantos de los pagos con paid_at en [from, to].
func (r *StatisticsRepo) GetTotals(ctx context.Context, from, to time.Time) (repository.PayrollTotals, error) {
	query := `
		SELECT COALESCE(SUM(net_amount), 0),
		       COALESCE(SUM(discounts_total), 0),
		       COALESCE(SUM(advances_total), 0),
		       COUNT(*)
		FROM payments
		WHERE paid_at BETWEEN $1 AND $2`
	var t repository.PayrollTotals
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&t.Paid, &t.Discounts, &t.Advances, &t.PaymentsCount); err != nil {
		return repository.PayrollTotals{}, fmt.Errorf("payroll totals: %w", err)
	}
	return t, nil
}

// CountActiveEmployees número de empleados activos.
func (r *StatisticsRepo) CountActiveEmployees(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active employees: %w", err)
	}
	return n, nil
}

// PendingAdvancesTotal suma de adelantos aún no descontados.
func (r *StatisticsRepo) PendingAdvancesTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM advances WHERE payment_id IS NULL`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("pending advances: %w", err)
	}
	return total, nil
}

// TopEmployees ranking por neto pagado en [from, to].
func (r *StatisticsRepo) TopEmployees(ctx context.Context, from, to time.Time, limit int) ([]repository.EmployeeNetResult, error) {
	query := `
		SELECT e.id, e.full_name, SUM(p.net_amount) AS net_paid, COUNT(p.id)
		FROM payments p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.paid_at BETWEEN $1 AND $2
		GROUP BY e.id, e.full_name
		ORDER BY net_paid DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top employees: %w", err)
	}
	defer rows.Close()
	var out []repository.EmployeeNetResult
	for rows.Next() {
		var res repository.EmployeeNetResult
		if err := rows.Scan(&res.EmployeeID, &res.FullName, &res.NetPaid, &res.Payments); err != nil {
			return nil, fmt.Errorf("scan top employee: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
