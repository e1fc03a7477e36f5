package identity

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ Directory = (*UserDirectory)(nil)

// UserDirectory persiste cambios de rol/estado y los anuncia por el ChangeFeed
// para que las sesiones abiertas se actualicen sin esperar a un Refresh.
type UserDirectory struct {
	repo repository.UserRepository
	feed *ChangeFeed
}

// NewUserDirectory construye el directorio.
func NewUserDirectory(repo repository.UserRepository, feed *ChangeFeed) *UserDirectory {
	return &UserDirectory{repo: repo, feed: feed}
}

// UpdateRole cambia el rol del usuario.
func (d *UserDirectory) UpdateRole(ctx context.Context, userID string, role entity.Role) error {
	if _, ok := entity.ParseRole(string(role)); !ok {
		return domain.ErrInvalidRole
	}
	if err := d.ensureExists(ctx, userID); err != nil {
		return err
	}
	if err := d.repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("directory: actualizar rol: %w", err)
	}
	d.feed.Publish(userID)
	return nil
}

// SetActive activa o desactiva al usuario.
func (d *UserDirectory) SetActive(ctx context.Context, userID string, active bool) error {
	if err := d.ensureExists(ctx, userID); err != nil {
		return err
	}
	if err := d.repo.SetActive(ctx, userID, active); err != nil {
		return fmt.Errorf("directory: actualizar estado: %w", err)
	}
	d.feed.Publish(userID)
	return nil
}

func (d *UserDirectory) ensureExists(ctx context.Context, userID string) error {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("directory: leer usuario: %w", err)
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return nil
}
