package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado al que se le liquida nómina.
type Employee struct {
	ID         string
	FullName   string
	DocumentID string // cédula / documento de identidad, único
	Position   string
	BaseSalary decimal.Decimal
	Phone      string
	HireDate   time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
