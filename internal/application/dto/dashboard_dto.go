package dto

import "github.com/shopspring/decimal"

// StatisticsDTO respuesta de GET /api/dashboard/statistics.
// KPIs del mes en curso más el Top-5 de empleados por neto pagado.
type StatisticsDTO struct {
	MonthPaid       decimal.Decimal `json:"month_paid"`
	MonthDiscounts  decimal.Decimal `json:"month_discounts"`
	MonthAdvances   decimal.Decimal `json:"month_advances"`
	MonthPayments   int             `json:"month_payments"`
	ActiveEmployees int             `json:"active_employees"`
	PendingAdvances decimal.Decimal `json:"pending_advances"` // adelantos aún no descontados

	TopEmployees []TopEmployeeDTO `json:"top_employees"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// TopEmployeeDTO empleado del ranking del dashboard.
type TopEmployeeDTO struct {
	EmployeeID string          `json:"employee_id"`
	FullName   string          `json:"full_name"`
	NetPaid    decimal.Decimal `json:"net_paid"`
	Payments   int             `json:"payments"`
}
