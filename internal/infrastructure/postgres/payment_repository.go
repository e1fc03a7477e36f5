package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, employee_id, period_start, period_end, gross_amount, discounts_total,
	advances_total, net_amount, notes, registered_by, paid_at, created_at`

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserta el pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.EmployeeID, p.PeriodStart, p.PeriodEnd, p.GrossAmount, p.DiscountsTotal,
		p.AdvancesTotal, p.NetAmount, p.Notes, p.RegisteredBy, p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago. (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// List pagos más recientes primero; EmployeeID vacío no filtra.
func (r *PaymentRepo) List(ctx context.Context, f repository.PayrollFilter) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE ($1 = '' OR employee_id::text = $1)
		ORDER BY paid_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.EmployeeID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	if err := row.Scan(&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.GrossAmount,
		&p.DiscountsTotal, &p.AdvancesTotal, &p.NetAmount, &p.Notes, &p.RegisteredBy,
		&p.PaidAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
