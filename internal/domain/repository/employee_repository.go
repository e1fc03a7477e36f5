package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// EmployeeFilter filtros para el listado de empleados.
type EmployeeFilter struct {
	Search     string // coincidencia parcial por nombre o documento
	OnlyActive bool
	Limit      int
	Offset     int
}

// EmployeeRepository puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	Update(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	List(ctx context.Context, f EmployeeFilter) ([]*entity.Employee, error)
}
