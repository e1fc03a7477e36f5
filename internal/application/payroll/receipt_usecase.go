package payroll

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pago ya registrado.
type ReceiptUseCase struct {
	paymentRepo  repository.PaymentRepository
	employeeRepo repository.EmployeeRepository
	discountRepo repository.DiscountRepository
	advanceRepo  repository.AdvanceRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	paymentRepo repository.PaymentRepository,
	employeeRepo repository.EmployeeRepository,
	discountRepo repository.DiscountRepository,
	advanceRepo repository.AdvanceRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		discountRepo: discountRepo,
		advanceRepo:  advanceRepo,
		generator:    generator,
	}
}

// DownloadReceipt devuelve (pdfBytes, filename) del comprobante.
// domain.ErrNotFound si el pago o su empleado no existen.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, paymentID string) ([]byte, string, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener pago: %w", err)
	}
	if payment == nil {
		return nil, "", domain.ErrNotFound
	}
	employee, err := uc.employeeRepo.GetByID(ctx, payment.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener empleado: %w", err)
	}
	if employee == nil {
		return nil, "", domain.ErrNotFound
	}
	discounts, err := uc.discountRepo.ListByPayment(ctx, payment.ID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: descuentos: %w", err)
	}
	advances, err := uc.advanceRepo.ListByPayment(ctx, payment.ID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: adelantos: %w", err)
	}

	pdf, err := uc.generator.GeneratePaymentReceipt(ctx, ReceiptData{
		Payment:   payment,
		Employee:  employee,
		Discounts: discounts,
		Advances:  advances,
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("comprobante-%s-%s.pdf", employee.DocumentID, payment.PeriodEnd.Format("2006-01-02"))
	return pdf, filename, nil
}
