package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var (
	_ repository.DiscountRepository = (*DiscountRepo)(nil)
	_ repository.AdvanceRepository  = (*AdvanceRepo)(nil)
)

const deductionColumns = `id, employee_id, amount, reason, date, payment_id, registered_by, created_at`

// deductionRow fila común de las tablas discounts y advances (mismo esquema).
type deductionRow struct {
	entity.Discount
}

// deductionStore consultas compartidas, parametrizadas por tabla.
type deductionStore struct {
	q     Querier
	table string
}

func (s deductionStore) create(ctx context.Context, d entity.Discount) error {
	query := `INSERT INTO ` + s.table + ` (` + deductionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.q.Exec(ctx, query,
		d.ID, d.EmployeeID, d.Amount, d.Reason, d.Date, d.PaymentID, d.RegisteredBy, d.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert %s: %w", s.table, err)
	}
	return nil
}

func (s deductionStore) list(ctx context.Context, f repository.PayrollFilter) ([]deductionRow, error) {
	return s.query(ctx, `SELECT `+deductionColumns+` FROM `+s.table+`
		WHERE ($1 = '' OR employee_id::text = $1)
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`, f.EmployeeID, f.Limit, f.Offset)
}

// listPending bloquea las filas (FOR UPDATE) para que dos pagos concurrentes no las consuman dos veces.
func (s deductionStore) listPending(ctx context.Context, employeeID string, until time.Time) ([]deductionRow, error) {
	return s.query(ctx, `SELECT `+deductionColumns+` FROM `+s.table+`
		WHERE employee_id = $1 AND payment_id IS NULL AND date <= $2
		ORDER BY date FOR UPDATE`, employeeID, until)
}

func (s deductionStore) listByPayment(ctx context.Context, paymentID string) ([]deductionRow, error) {
	return s.query(ctx, `SELECT `+deductionColumns+` FROM `+s.table+`
		WHERE payment_id = $1 ORDER BY date`, paymentID)
}

func (s deductionStore) markApplied(ctx context.Context, ids []string, paymentID string) error {
	if len(ids) == 0 {
		return nil
	}
	tag, err := s.q.Exec(ctx, `UPDATE `+s.table+` SET payment_id = $2
		WHERE id::text = ANY($1) AND payment_id IS NULL`, ids, paymentID)
	if err != nil {
		return fmt.Errorf("apply %s: %w", s.table, err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("apply %s: %w", s.table, domain.ErrConflict)
	}
	return nil
}

func (s deductionStore) query(ctx context.Context, sql string, args ...any) ([]deductionRow, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()
	var list []deductionRow
	for rows.Next() {
		var d deductionRow
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Amount, &d.Reason, &d.Date,
			&d.PaymentID, &d.RegisteredBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// DiscountRepo implementación de DiscountRepository (tabla discounts).
type DiscountRepo struct {
	store deductionStore
}

// NewDiscountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{store: deductionStore{q: q, table: "discounts"}}
}

func (r *DiscountRepo) Create(ctx context.Context, d *entity.Discount) error {
	return r.store.create(ctx, *d)
}

func (r *DiscountRepo) List(ctx context.Context, f repository.PayrollFilter) ([]*entity.Discount, error) {
	return toDiscounts(r.store.list(ctx, f))
}

func (r *DiscountRepo) ListPending(ctx context.Context, employeeID string, until time.Time) ([]*entity.Discount, error) {
	return toDiscounts(r.store.listPending(ctx, employeeID, until))
}

func (r *DiscountRepo) ListByPayment(ctx context.Context, paymentID string) ([]*entity.Discount, error) {
	return toDiscounts(r.store.listByPayment(ctx, paymentID))
}

func (r *DiscountRepo) MarkApplied(ctx context.Context, ids []string, paymentID string) error {
	return r.store.markApplied(ctx, ids, paymentID)
}

// AdvanceRepo implementación de AdvanceRepository (tabla advances).
type AdvanceRepo struct {
	store deductionStore
}

// NewAdvanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdvanceRepository(q Querier) *AdvanceRepo {
	return &AdvanceRepo{store: deductionStore{q: q, table: "advances"}}
}

func (r *AdvanceRepo) Create(ctx context.Context, a *entity.Advance) error {
	return r.store.create(ctx, entity.Discount(*a))
}

func (r *AdvanceRepo) List(ctx context.Context, f repository.PayrollFilter) ([]*entity.Advance, error) {
	return toAdvances(r.store.list(ctx, f))
}

func (r *AdvanceRepo) ListPending(ctx context.Context, employeeID string, until time.Time) ([]*entity.Advance, error) {
	return toAdvances(r.store.listPending(ctx, employeeID, until))
}

func (r *AdvanceRepo) ListByPayment(ctx context.Context, paymentID string) ([]*entity.Advance, error) {
	return toAdvances(r.store.listByPayment(ctx, paymentID))
}

func (r *AdvanceRepo) MarkApplied(ctx context.Context, ids []string, paymentID string) error {
	return r.store.markApplied(ctx, ids, paymentID)
}

func toDiscounts(rows []deductionRow, err error) ([]*entity.Discount, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Discount, 0, len(rows))
	for i := range rows {
		d := rows[i].Discount
		out = append(out, &d)
	}
	return out, nil
}

func toAdvances(rows []deductionRow, err error) ([]*entity.Advance, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Advance, 0, len(rows))
	for i := range rows {
		a := entity.Advance(rows[i].Discount)
		out = append(out, &a)
	}
	return out, nil
}
