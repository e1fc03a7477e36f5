// Package analytics contiene el caso de uso del dashboard de estadísticas de nómina.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

const dashboardTopEmployees = 5 // empleados en el ranking del dashboard

// StatisticsUseCase genera los KPIs del mes en curso.
//
// Fuente de datos: StatisticsRepository (consultas read-only).
type StatisticsUseCase struct {
	statsRepo repository.StatisticsRepository
	now       func() time.Time
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(statsRepo repository.StatisticsRepository) *StatisticsUseCase {
	return &StatisticsUseCase{statsRepo: statsRepo, now: time.Now}
}

// GetStatistics construye el StatisticsDTO.
//
// Cuatro consultas en paralelo:
//  1. GetTotals(mes)              → pagado, descuentos, adelantos, nº pagos
//  2. CountActiveEmployees        → empleados activos
//  3. PendingAdvancesTotal        → adelantos sin descontar
//  4. TopEmployees(mes, top 5)    → ranking por neto pagado
func (uc *StatisticsUseCase) GetStatistics(ctx context.Context) (*dto.StatisticsDTO, error) {
	now := uc.now()

	// Mes en curso: día 1 a las 00:00 hasta hoy 23:59:59.999
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type totalsResult struct {
		totals repository.PayrollTotals
		err    error
	}
	type countResult struct {
		n   int
		err error
	}
	type amountResult struct {
		amount decimal.Decimal
		err    error
	}
	type topResult struct {
		top []repository.EmployeeNetResult
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	activeCh := make(chan countResult, 1)
	pendingCh := make(chan amountResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		t, err := uc.statsRepo.GetTotals(ctx, monthStart, monthEnd)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountActiveEmployees(ctx)
		activeCh <- countResult{n, err}
	}()
	go func() {
		a, err := uc.statsRepo.PendingAdvancesTotal(ctx)
		pendingCh <- amountResult{a, err}
	}()
	go func() {
		top, err := uc.statsRepo.TopEmployees(ctx, monthStart, monthEnd, dashboardTopEmployees)
		topCh <- topResult{top, err}
	}()

	totals := <-totalsCh
	active := <-activeCh
	pending := <-pendingCh
	top := <-topCh

	if totals.err != nil {
		return nil, fmt.Errorf("statistics: totales del mes: %w", totals.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("statistics: empleados activos: %w", active.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("statistics: adelantos pendientes: %w", pending.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("statistics: top empleados: %w", top.err)
	}

	ranking := make([]dto.TopEmployeeDTO, 0, len(top.top))
	for _, r := range top.top {
		ranking = append(ranking, dto.TopEmployeeDTO{
			EmployeeID: r.EmployeeID,
			FullName:   r.FullName,
			NetPaid:    r.NetPaid.Round(2),
			Payments:   r.Payments,
		})
	}

	return &dto.StatisticsDTO{
		MonthPaid:       totals.totals.Paid.Round(2),
		MonthDiscounts:  totals.totals.Discounts.Round(2),
		MonthAdvances:   totals.totals.Advances.Round(2),
		MonthPayments:   totals.totals.PaymentsCount,
		ActiveEmployees: active.n,
		PendingAdvances: pending.amount.Round(2),
		TopEmployees:    ranking,
		DateLabel:       monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
