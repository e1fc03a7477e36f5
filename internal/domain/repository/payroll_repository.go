package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// PayrollFilter filtros comunes para listados de pagos, descuentos y adelantos.
// EmployeeID vacío lista todos los empleados.
type PayrollFilter struct {
	EmployeeID string
	Limit      int
	Offset     int
}

// PaymentRepository puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	List(ctx context.Context, f PayrollFilter) ([]*entity.Payment, error)
}

// DiscountRepository puerto de persistencia para descuentos.
type DiscountRepository interface {
	Create(ctx context.Context, d *entity.Discount) error
	List(ctx context.Context, f PayrollFilter) ([]*entity.Discount, error)
	// ListPending devuelve los descuentos sin pago asociado con fecha <= until.
	ListPending(ctx context.Context, employeeID string, until time.Time) ([]*entity.Discount, error)
	ListByPayment(ctx context.Context, paymentID string) ([]*entity.Discount, error)
	MarkApplied(ctx context.Context, ids []string, paymentID string) error
}

// AdvanceRepository puerto de persistencia para adelantos.
type AdvanceRepository interface {
	Create(ctx context.Context, a *entity.Advance) error
	List(ctx context.Context, f PayrollFilter) ([]*entity.Advance, error)
	ListPending(ctx context.Context, employeeID string, until time.Time) ([]*entity.Advance, error)
	ListByPayment(ctx context.Context, paymentID string) ([]*entity.Advance, error)
	MarkApplied(ctx context.Context, ids []string, paymentID string) error
}
