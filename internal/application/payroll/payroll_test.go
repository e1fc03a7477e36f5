package payroll

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// memStore implementa todos los repositorios de nómina en memoria.
// RunPayroll restaura el estado si fn falla.
type memStore struct {
	employees map[string]*entity.Employee
	payments  map[string]*entity.Payment
	discounts []*entity.Discount
	advances  []*entity.Advance
	failOn    string
}

func newMemStore() *memStore {
	return &memStore{
		employees: map[string]*entity.Employee{},
		payments:  map[string]*entity.Payment{},
	}
}

func (s *memStore) addEmployee(id string, active bool) {
	s.employees[id] = &entity.Employee{ID: id, FullName: "Empleado " + id, DocumentID: "CC" + id, IsActive: active}
}

func (s *memStore) RunPayroll(ctx context.Context, fn func(repository.PaymentRepository, repository.DiscountRepository, repository.AdvanceRepository) error) error {
	payments := make(map[string]*entity.Payment, len(s.payments))
	for k, v := range s.payments {
		payments[k] = v
	}
	discounts := cloneDiscounts(s.discounts)
	advances := cloneAdvances(s.advances)

	if err := fn(paymentRepo{s}, discountRepo{s}, advanceRepo{s}); err != nil {
		s.payments, s.discounts, s.advances = payments, discounts, advances
		return err
	}
	return nil
}

func cloneDiscounts(in []*entity.Discount) []*entity.Discount {
	out := make([]*entity.Discount, 0, len(in))
	for _, d := range in {
		c := *d
		out = append(out, &c)
	}
	return out
}

func cloneAdvances(in []*entity.Advance) []*entity.Advance {
	out := make([]*entity.Advance, 0, len(in))
	for _, a := range in {
		c := *a
		out = append(out, &c)
	}
	return out
}

type employeeRepo struct{ s *memStore }

func (r employeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.employees[e.ID] = e
	return nil
}
func (r employeeRepo) Update(_ context.Context, e *entity.Employee) error {
	r.s.employees[e.ID] = e
	return nil
}
func (r employeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return r.s.employees[id], nil
}
func (r employeeRepo) List(context.Context, repository.EmployeeFilter) ([]*entity.Employee, error) {
	return nil, nil
}

type paymentRepo struct{ s *memStore }

func (r paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if r.s.failOn == "payment" {
		return errors.New("insert failed")
	}
	r.s.payments[p.ID] = p
	return nil
}
func (r paymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	return r.s.payments[id], nil
}
func (r paymentRepo) List(_ context.Context, f repository.PayrollFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if f.EmployeeID == "" || p.EmployeeID == f.EmployeeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

type discountRepo struct{ s *memStore }

func (r discountRepo) Create(_ context.Context, d *entity.Discount) error {
	r.s.discounts = append(r.s.discounts, d)
	return nil
}
func (r discountRepo) List(_ context.Context, f repository.PayrollFilter) ([]*entity.Discount, error) {
	var out []*entity.Discount
	for _, d := range r.s.discounts {
		if f.EmployeeID == "" || d.EmployeeID == f.EmployeeID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r discountRepo) ListPending(_ context.Context, employeeID string, until time.Time) ([]*entity.Discount, error) {
	var out []*entity.Discount
	for _, d := range r.s.discounts {
		if d.EmployeeID == employeeID && d.Pending() && !d.Date.After(until) {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r discountRepo) ListByPayment(_ context.Context, paymentID string) ([]*entity.Discount, error) {
	var out []*entity.Discount
	for _, d := range r.s.discounts {
		if d.PaymentID != nil && *d.PaymentID == paymentID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r discountRepo) MarkApplied(_ context.Context, ids []string, paymentID string) error {
	for _, id := range ids {
		for _, d := range r.s.discounts {
			if d.ID == id {
				pid := paymentID
				d.PaymentID = &pid
			}
		}
	}
	return nil
}

type advanceRepo struct{ s *memStore }

func (r advanceRepo) Create(_ context.Context, a *entity.Advance) error {
	r.s.advances = append(r.s.advances, a)
	return nil
}
func (r advanceRepo) List(_ context.Context, f repository.PayrollFilter) ([]*entity.Advance, error) {
	var out []*entity.Advance
	for _, a := range r.s.advances {
		if f.EmployeeID == "" || a.EmployeeID == f.EmployeeID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r advanceRepo) ListPending(_ context.Context, employeeID string, until time.Time) ([]*entity.Advance, error) {
	var out []*entity.Advance
	for _, a := range r.s.advances {
		if a.EmployeeID == employeeID && a.Pending() && !a.Date.After(until) {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r advanceRepo) ListByPayment(_ context.Context, paymentID string) ([]*entity.Advance, error) {
	var out []*entity.Advance
	for _, a := range r.s.advances {
		if a.PaymentID != nil && *a.PaymentID == paymentID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r advanceRepo) MarkApplied(_ context.Context, ids []string, paymentID string) error {
	for _, id := range ids {
		for _, a := range r.s.advances {
			if a.ID == id {
				pid := paymentID
				a.PaymentID = &pid
			}
		}
	}
	return nil
}

type fakeGenerator struct{ got ReceiptData }

func (g *fakeGenerator) GeneratePaymentReceipt(_ context.Context, data ReceiptData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-1.4"), nil
}

var (
	periodStart = time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
)

func newUseCases(s *memStore) (*PaymentUseCase, *DeductionUseCase) {
	pay := NewPaymentUseCase(s, employeeRepo{s}, paymentRepo{s})
	pay.now = func() time.Time { return periodEnd.Add(12 * time.Hour) }
	ded := NewDeductionUseCase(employeeRepo{s}, discountRepo{s}, advanceRepo{s})
	return pay, ded
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRegisterPayment_AppliesPendingDeductions(t *testing.T) {
	s := newMemStore()
	s.addEmployee("e1", true)
	pay, ded := newUseCases(s)
	ctx := context.Background()

	_, err := ded.RegisterDiscount(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(50000), Reason: "Uniforme", Date: periodStart})
	require.NoError(t, err)
	_, err = ded.RegisterAdvance(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(200000), Reason: "Adelanto quincena", Date: periodStart.AddDate(0, 0, 5)})
	require.NoError(t, err)
	// Fuera del período: queda pendiente.
	_, err = ded.RegisterAdvance(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(10000), Reason: "Siguiente", Date: periodEnd.AddDate(0, 0, 3)})
	require.NoError(t, err)

	got, err := pay.RegisterPayment(ctx, "admin", dto.RegisterPaymentRequest{
		EmployeeID: "e1", PeriodStart: periodStart, PeriodEnd: periodEnd, GrossAmount: money(1000000),
	})
	require.NoError(t, err)

	assert.True(t, got.DiscountsTotal.Equal(money(50000)))
	assert.True(t, got.AdvancesTotal.Equal(money(200000)))
	assert.True(t, got.NetAmount.Equal(money(750000)))
	assert.Equal(t, "admin", got.RegisteredBy)

	applied, _ := advanceRepo{s}.ListByPayment(ctx, got.ID)
	assert.Len(t, applied, 1)
	pending, _ := advanceRepo{s}.ListPending(ctx, "e1", periodEnd.AddDate(0, 1, 0))
	require.Len(t, pending, 1)
	assert.Equal(t, "Siguiente", pending[0].Reason)
}

func TestRegisterPayment_NegativeNetRollsBack(t *testing.T) {
	s := newMemStore()
	s.addEmployee("e1", true)
	pay, ded := newUseCases(s)
	ctx := context.Background()

	_, err := ded.RegisterAdvance(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(600000), Reason: "Adelanto", Date: periodStart})
	require.NoError(t, err)

	_, err = pay.RegisterPayment(ctx, "admin", dto.RegisterPaymentRequest{
		EmployeeID: "e1", PeriodStart: periodStart, PeriodEnd: periodEnd, GrossAmount: money(500000),
	})
	assert.ErrorIs(t, err, domain.ErrNegativeNetPay)
	assert.Empty(t, s.payments)
	assert.True(t, s.advances[0].Pending())
}

func TestRegisterPayment_InsertFailureKeepsDeductionsPending(t *testing.T) {
	s := newMemStore()
	s.addEmployee("e1", true)
	pay, ded := newUseCases(s)
	ctx := context.Background()

	_, err := ded.RegisterDiscount(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(1000), Reason: "x", Date: periodStart})
	require.NoError(t, err)
	s.failOn = "payment"

	_, err = pay.RegisterPayment(ctx, "admin", dto.RegisterPaymentRequest{
		EmployeeID: "e1", PeriodStart: periodStart, PeriodEnd: periodEnd, GrossAmount: money(5000),
	})
	require.Error(t, err)
	assert.True(t, s.discounts[0].Pending())
}

func TestRegisterPayment_Validation(t *testing.T) {
	s := newMemStore()
	s.addEmployee("active", true)
	s.addEmployee("retired", false)
	pay, _ := newUseCases(s)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.RegisterPaymentRequest
		want error
	}{
		{"zero gross", dto.RegisterPaymentRequest{EmployeeID: "active", PeriodStart: periodStart, PeriodEnd: periodEnd}, domain.ErrInvalidInput},
		{"inverted period", dto.RegisterPaymentRequest{EmployeeID: "active", PeriodStart: periodEnd, PeriodEnd: periodStart, GrossAmount: money(1)}, domain.ErrInvalidInput},
		{"unknown employee", dto.RegisterPaymentRequest{EmployeeID: "ghost", PeriodStart: periodStart, PeriodEnd: periodEnd, GrossAmount: money(1)}, domain.ErrNotFound},
		{"inactive employee", dto.RegisterPaymentRequest{EmployeeID: "retired", PeriodStart: periodStart, PeriodEnd: periodEnd, GrossAmount: money(1)}, domain.ErrInactiveEmployee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pay.RegisterPayment(ctx, "admin", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterDeduction_Validation(t *testing.T) {
	s := newMemStore()
	s.addEmployee("e1", true)
	_, ded := newUseCases(s)
	ctx := context.Background()

	_, err := ded.RegisterDiscount(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(-5), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ded.RegisterAdvance(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(5), Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := ded.RegisterAdvance(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(5), Reason: "ok"})
	require.NoError(t, err)
	assert.True(t, got.Pending)
	assert.False(t, got.Date.IsZero())
}

func TestDownloadReceipt(t *testing.T) {
	s := newMemStore()
	s.addEmployee("e1", true)
	pay, ded := newUseCases(s)
	ctx := context.Background()

	_, err := ded.RegisterDiscount(ctx, "admin", dto.RegisterDeductionRequest{EmployeeID: "e1", Amount: money(1000), Reason: "x", Date: periodStart})
	require.NoError(t, err)
	p, err := pay.RegisterPayment(ctx, "admin", dto.RegisterPaymentRequest{
		EmployeeID: "e1", PeriodStart: periodStart, PeriodEnd: periodEnd, GrossAmount: money(5000),
	})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := NewReceiptUseCase(paymentRepo{s}, employeeRepo{s}, discountRepo{s}, advanceRepo{s}, gen)

	pdf, filename, err := uc.DownloadReceipt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, "comprobante-CCe1-2026-10-15.pdf", filename)
	assert.Len(t, gen.got.Discounts, 1)
	assert.Empty(t, gen.got.Advances)

	_, _, err = uc.DownloadReceipt(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNetAmount(t *testing.T) {
	net := NetAmount(decimal.RequireFromString("1000.005"), money(100), money(0))
	assert.Equal(t, "900.01", net.StringFixed(2))
}
