package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPaymentRequest entrada para registrar un pago de nómina.
// El neto se calcula en servidor descontando descuentos y adelantos pendientes.
type RegisterPaymentRequest struct {
	EmployeeID  string          `json:"employee_id" validate:"required,uuid"`
	PeriodStart time.Time       `json:"period_start" validate:"required"`
	PeriodEnd   time.Time       `json:"period_end" validate:"required"`
	GrossAmount decimal.Decimal `json:"gross_amount" validate:"required"`
	Notes       string          `json:"notes" validate:"omitempty,max=500"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountsTotal decimal.Decimal `json:"discounts_total"`
	AdvancesTotal  decimal.Decimal `json:"advances_total"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Notes          string          `json:"notes,omitempty"`
	RegisteredBy   string          `json:"registered_by"`
	PaidAt         time.Time       `json:"paid_at"`
}

// RegisterDeductionRequest entrada común para descuentos y adelantos.
type RegisterDeductionRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Reason     string          `json:"reason" validate:"required,max=300"`
	Date       time.Time       `json:"date"`
}

// DeductionResponse salida de un descuento o adelanto.
type DeductionResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	Date         time.Time       `json:"date"`
	Pending      bool            `json:"pending"`
	PaymentID    *string         `json:"payment_id,omitempty"`
	RegisteredBy string          `json:"registered_by"`
}

// PayrollListRequest filtros de listados de pagos/descuentos/adelantos.
type PayrollListRequest struct {
	PageRequest
	EmployeeID string `query:"employee_id"`
}
