package identity

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// Bridge adapta un Provider al contrato que consume el Holder de sesión:
// convierte "sin usuario" en domain.ErrNoSession y bombea las observaciones.
type Bridge struct {
	provider Provider
}

// NewBridge construye el bridge sobre el proveedor.
func NewBridge(provider Provider) *Bridge {
	return &Bridge{provider: provider}
}

// CurrentUser devuelve el usuario actual o un error; nunca (nil, nil).
func (b *Bridge) CurrentUser(ctx context.Context) (*entity.User, error) {
	u, err := b.provider.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoSession, err)
	}
	if u == nil {
		return nil, domain.ErrNoSession
	}
	return u, nil
}

// RecordLastLogin delega en el proveedor.
func (b *Bridge) RecordLastLogin(ctx context.Context, userID string) error {
	return b.provider.RecordLastLogin(ctx, userID)
}

// Watch entrega cada observación del proveedor a apply hasta que ctx se cancele
// o el proveedor cierre el stream. Bloquea; se ejecuta en su propia goroutine.
func (b *Bridge) Watch(ctx context.Context, apply func(*entity.User)) {
	updates := b.provider.ObserveCurrentUser(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			apply(u)
		}
	}
}
