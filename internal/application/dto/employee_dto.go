package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	FullName   string          `json:"full_name" validate:"required,max=200"`
	DocumentID string          `json:"document_id" validate:"required,max=30"`
	Position   string          `json:"position" validate:"omitempty,max=120"`
	BaseSalary decimal.Decimal `json:"base_salary" validate:"required"`
	Phone      string          `json:"phone" validate:"omitempty,max=30"`
	HireDate   time.Time       `json:"hire_date"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado. Campos nil no cambian.
type UpdateEmployeeRequest struct {
	FullName   *string          `json:"full_name,omitempty"`
	Position   *string          `json:"position,omitempty"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
}

// EmployeeListRequest filtros de GET /api/employees.
type EmployeeListRequest struct {
	PageRequest
	Search     string `query:"search"`
	OnlyActive bool   `query:"only_active"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	DocumentID string          `json:"document_id"`
	Position   string          `json:"position"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Phone      string          `json:"phone"`
	HireDate   time.Time       `json:"hire_date"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
