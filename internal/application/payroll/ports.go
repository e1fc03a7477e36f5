// Package payroll contiene los casos de uso de liquidación: pagos, descuentos,
// adelantos y el comprobante PDF de pago.
package payroll

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Garantiza que un pago y el consumo de sus descuentos/adelantos sean atómicos.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(
		paymentRepo repository.PaymentRepository,
		discountRepo repository.DiscountRepository,
		advanceRepo repository.AdvanceRepository,
	) error) error
}

// ReceiptData todo lo que el generador necesita para el comprobante.
type ReceiptData struct {
	Payment   *entity.Payment
	Employee  *entity.Employee
	Discounts []*entity.Discount
	Advances  []*entity.Advance
}

// ReceiptGenerator genera el comprobante de pago (PDF).
type ReceiptGenerator interface {
	GeneratePaymentReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
