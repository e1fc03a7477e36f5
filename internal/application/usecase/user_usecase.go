package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/identity"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo ADMIN llega aquí, vía RequireRoute).
// Los cambios de rol y estado pasan por el Directory para notificar a las sesiones abiertas.
type UserUseCase struct {
	repo      repository.UserRepository
	directory identity.Directory
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, directory identity.Directory) *UserUseCase {
	return &UserUseCase{repo: repo, directory: directory}
}

// Create registra un usuario nuevo, activo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia el rol del usuario. Un administrador no puede quitarse su propio rol.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorID, userID, rawRole string) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(rawRole)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if actorID == userID && role != entity.RoleAdmin {
		return nil, domain.ErrConflict
	}
	if err := uc.directory.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, userID)
}

// SetActive activa o desactiva al usuario. Un administrador no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, userID string, active bool) (*dto.UserResponse, error) {
	if actorID == userID && !active {
		return nil, domain.ErrConflict
	}
	if err := uc.directory.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, userID)
}
