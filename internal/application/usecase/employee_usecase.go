package usecase

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

// EmployeeUseCase casos de uso CRUD para empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create crea un empleado activo.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.DocumentID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BaseSalary.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	hire := in.HireDate
	if hire.IsZero() {
		hire = now
	}
	e := &entity.Employee{
		ID:         uuid.New().String(),
		FullName:   strings.TrimSpace(in.FullName),
		DocumentID: strings.TrimSpace(in.DocumentID),
		Position:   in.Position,
		BaseSalary: in.BaseSalary.Round(2),
		Phone:      in.Phone,
		HireDate:   hire,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// GetByID obtiene un empleado. domain.ErrNotFound si no existe.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(e), nil
}

// Update aplica los campos no nil del request.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return nil, domain.ErrInvalidInput
		}
		e.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Position != nil {
		e.Position = *in.Position
	}
	if in.BaseSalary != nil {
		if in.BaseSalary.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		e.BaseSalary = in.BaseSalary.Round(2)
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// List lista empleados con filtros y paginación.
func (uc *EmployeeUseCase) List(ctx context.Context, in dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.EmployeeFilter{
		Search:     strings.TrimSpace(in.Search),
		OnlyActive: in.OnlyActive,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		DocumentID: e.DocumentID,
		Position:   e.Position,
		BaseSalary: e.BaseSalary,
		Phone:      e.Phone,
		HireDate:   e.HireDate,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
