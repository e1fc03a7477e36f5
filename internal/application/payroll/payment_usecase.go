package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// PaymentUseCase registro y consulta de pagos de nómina.
type PaymentUseCase struct {
	tx           TxRunner
	employeeRepo repository.EmployeeRepository
	paymentRepo  repository.PaymentRepository
	now          func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(tx TxRunner, employeeRepo repository.EmployeeRepository, paymentRepo repository.PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{tx: tx, employeeRepo: employeeRepo, paymentRepo: paymentRepo, now: time.Now}
}

// RegisterPayment liquida un pago en una sola transacción:
//  1. Carga descuentos y adelantos pendientes con fecha <= fin del período.
//  2. Neto = bruto - descuentos - adelantos; si es negativo, ErrNegativeNetPay.
//  3. Inserta el pago y marca los descuentos/adelantos consumidos con su ID.
func (uc *PaymentUseCase) RegisterPayment(ctx context.Context, actorID string, in dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	if in.EmployeeID == "" || !in.GrossAmount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() || in.PeriodEnd.Before(in.PeriodStart) {
		return nil, domain.ErrInvalidInput
	}
	if err := ensureActiveEmployee(ctx, uc.employeeRepo, in.EmployeeID); err != nil {
		return nil, err
	}

	now := uc.now()
	payment := &entity.Payment{
		ID:           uuid.New().String(),
		EmployeeID:   in.EmployeeID,
		PeriodStart:  in.PeriodStart,
		PeriodEnd:    in.PeriodEnd,
		GrossAmount:  in.GrossAmount.Round(2),
		Notes:        strings.TrimSpace(in.Notes),
		RegisteredBy: actorID,
		PaidAt:       now,
		CreatedAt:    now,
	}

	err := uc.tx.RunPayroll(ctx, func(
		paymentRepo repository.PaymentRepository,
		discountRepo repository.DiscountRepository,
		advanceRepo repository.AdvanceRepository,
	) error {
		discounts, err := discountRepo.ListPending(ctx, in.EmployeeID, in.PeriodEnd)
		if err != nil {
			return fmt.Errorf("payroll: descuentos pendientes: %w", err)
		}
		advances, err := advanceRepo.ListPending(ctx, in.EmployeeID, in.PeriodEnd)
		if err != nil {
			return fmt.Errorf("payroll: adelantos pendientes: %w", err)
		}

		payment.DiscountsTotal = sumDiscounts(discounts)
		payment.AdvancesTotal = sumAdvances(advances)
		payment.NetAmount = NetAmount(payment.GrossAmount, payment.DiscountsTotal, payment.AdvancesTotal)
		if payment.NetAmount.IsNegative() {
			return domain.ErrNegativeNetPay
		}

		if err := paymentRepo.Create(ctx, payment); err != nil {
			return fmt.Errorf("payroll: insertar pago: %w", err)
		}
		if err := discountRepo.MarkApplied(ctx, discountIDs(discounts), payment.ID); err != nil {
			return fmt.Errorf("payroll: aplicar descuentos: %w", err)
		}
		if err := advanceRepo.MarkApplied(ctx, advanceIDs(advances), payment.ID); err != nil {
			return fmt.Errorf("payroll: aplicar adelantos: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// GetByID obtiene un pago. domain.ErrNotFound si no existe.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(p), nil
}

// List lista pagos (opcionalmente de un empleado), más recientes primero.
func (uc *PaymentUseCase) List(ctx context.Context, in dto.PayrollListRequest) ([]dto.PaymentResponse, error) {
	in.DefaultPage()
	list, err := uc.paymentRepo.List(ctx, repository.PayrollFilter{EmployeeID: in.EmployeeID, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

// NetAmount neto a pagar redondeado a 2 decimales.
func NetAmount(gross, discounts, advances decimal.Decimal) decimal.Decimal {
	return gross.Sub(discounts).Sub(advances).Round(2)
}

func ensureActiveEmployee(ctx context.Context, repo repository.EmployeeRepository, id string) error {
	e, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if !e.IsActive {
		return domain.ErrInactiveEmployee
	}
	return nil
}

func sumDiscounts(list []*entity.Discount) decimal.Decimal {
	total := decimal.Zero
	for _, d := range list {
		total = total.Add(d.Amount)
	}
	return total
}

func sumAdvances(list []*entity.Advance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range list {
		total = total.Add(a.Amount)
	}
	return total
}

func discountIDs(list []*entity.Discount) []string {
	ids := make([]string, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.ID)
	}
	return ids
}

func advanceIDs(list []*entity.Advance) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		PeriodStart:    p.PeriodStart,
		PeriodEnd:      p.PeriodEnd,
		GrossAmount:    p.GrossAmount,
		DiscountsTotal: p.DiscountsTotal,
		AdvancesTotal:  p.AdvancesTotal,
		NetAmount:      p.NetAmount,
		Notes:          p.Notes,
		RegisteredBy:   p.RegisteredBy,
		PaidAt:         p.PaidAt,
	}
}
