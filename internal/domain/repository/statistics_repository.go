package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollTotals totales monetarios de un período.
type PayrollTotals struct {
	Paid          decimal.Decimal
	Discounts     decimal.Decimal
	Advances      decimal.Decimal
	PaymentsCount int
}

// EmployeeNetResult neto pagado a un empleado en un período (ranking del dashboard).
type EmployeeNetResult struct {
	EmployeeID string
	FullName   string
	NetPaid    decimal.Decimal
	Payments   int
}

// StatisticsRepository consultas de solo lectura para el dashboard de estadísticas.
type StatisticsRepository interface {
	GetTotals(ctx context.Context, from, to time.Time) (PayrollTotals, error)
	CountActiveEmployees(ctx context.Context) (int, error)
	PendingAdvancesTotal(ctx context.Context) (decimal.Decimal, error)
	TopEmployees(ctx context.Context, from, to time.Time, limit int) ([]EmployeeNetResult, error)
}
