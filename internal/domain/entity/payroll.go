package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment pago de nómina registrado para un empleado en un período.
// NetAmount = GrossAmount - DiscountsTotal - AdvancesTotal.
type Payment struct {
	ID             string
	EmployeeID     string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	GrossAmount    decimal.Decimal
	DiscountsTotal decimal.Decimal
	AdvancesTotal  decimal.Decimal
	NetAmount      decimal.Decimal
	Notes          string
	RegisteredBy   string // user ID
	PaidAt         time.Time
	CreatedAt      time.Time
}

// Discount descuento aplicado a un empleado (multa, faltante, préstamo, etc.).
// PaymentID es nil mientras el descuento esté pendiente de liquidar.
type Discount struct {
	ID           string
	EmployeeID   string
	Amount       decimal.Decimal
	Reason       string
	Date         time.Time
	PaymentID    *string
	RegisteredBy string
	CreatedAt    time.Time
}

// Pending indica si el descuento aún no fue consumido por un pago.
func (d *Discount) Pending() bool { return d.PaymentID == nil }

// Advance adelanto de salario entregado a un empleado.
type Advance struct {
	ID           string
	EmployeeID   string
	Amount       decimal.Decimal
	Reason       string
	Date         time.Time
	PaymentID    *string
	RegisteredBy string
	CreatedAt    time.Time
}

// Pending indica si el adelanto aún no fue descontado en un pago.
func (a *Advance) Pending() bool { return a.PaymentID == nil }
