package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// DeductionUseCase registro y consulta de descuentos y adelantos.
// Ambos quedan pendientes hasta que un pago los consume.
type DeductionUseCase struct {
	employeeRepo repository.EmployeeRepository
	discountRepo repository.DiscountRepository
	advanceRepo  repository.AdvanceRepository
	now          func() time.Time
}

// NewDeductionUseCase construye el caso de uso.
func NewDeductionUseCase(
	employeeRepo repository.EmployeeRepository,
	discountRepo repository.DiscountRepository,
	advanceRepo repository.AdvanceRepository,
) *DeductionUseCase {
	return &DeductionUseCase{
		employeeRepo: employeeRepo,
		discountRepo: discountRepo,
		advanceRepo:  advanceRepo,
		now:          time.Now,
	}
}

// RegisterDiscount registra un descuento pendiente.
func (uc *DeductionUseCase) RegisterDiscount(ctx context.Context, actorID string, in dto.RegisterDeductionRequest) (*dto.DeductionResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	now := uc.now()
	d := &entity.Discount{
		ID:           uuid.New().String(),
		EmployeeID:   in.EmployeeID,
		Amount:       in.Amount.Round(2),
		Reason:       strings.TrimSpace(in.Reason),
		Date:         dateOr(in.Date, now),
		RegisteredBy: actorID,
		CreatedAt:    now,
	}
	if err := uc.discountRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return discountResponse(d), nil
}

// RegisterAdvance registra un adelanto pendiente.
func (uc *DeductionUseCase) RegisterAdvance(ctx context.Context, actorID string, in dto.RegisterDeductionRequest) (*dto.DeductionResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	now := uc.now()
	a := &entity.Advance{
		ID:           uuid.New().String(),
		EmployeeID:   in.EmployeeID,
		Amount:       in.Amount.Round(2),
		Reason:       strings.TrimSpace(in.Reason),
		Date:         dateOr(in.Date, now),
		RegisteredBy: actorID,
		CreatedAt:    now,
	}
	if err := uc.advanceRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return advanceResponse(a), nil
}

// ListDiscounts lista descuentos, más recientes primero.
func (uc *DeductionUseCase) ListDiscounts(ctx context.Context, in dto.PayrollListRequest) ([]dto.DeductionResponse, error) {
	in.DefaultPage()
	list, err := uc.discountRepo.List(ctx, repository.PayrollFilter{EmployeeID: in.EmployeeID, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeductionResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *discountResponse(d))
	}
	return out, nil
}

// ListAdvances lista adelantos, más recientes primero.
func (uc *DeductionUseCase) ListAdvances(ctx context.Context, in dto.PayrollListRequest) ([]dto.DeductionResponse, error) {
	in.DefaultPage()
	list, err := uc.advanceRepo.List(ctx, repository.PayrollFilter{EmployeeID: in.EmployeeID, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeductionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *advanceResponse(a))
	}
	return out, nil
}

func (uc *DeductionUseCase) validate(ctx context.Context, in dto.RegisterDeductionRequest) error {
	if in.EmployeeID == "" || !in.Amount.IsPositive() || strings.TrimSpace(in.Reason) == "" {
		return domain.ErrInvalidInput
	}
	return ensureActiveEmployee(ctx, uc.employeeRepo, in.EmployeeID)
}

func dateOr(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}

func discountResponse(d *entity.Discount) *dto.DeductionResponse {
	return &dto.DeductionResponse{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		Amount:       d.Amount,
		Reason:       d.Reason,
		Date:         d.Date,
		Pending:      d.Pending(),
		PaymentID:    d.PaymentID,
		RegisteredBy: d.RegisteredBy,
	}
}

func advanceResponse(a *entity.Advance) *dto.DeductionResponse {
	return &dto.DeductionResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Amount:       a.Amount,
		Reason:       a.Reason,
		Date:         a.Date,
		Pending:      a.Pending(),
		PaymentID:    a.PaymentID,
		RegisteredBy: a.RegisteredBy,
	}
}
