// Package identity conecta la sesión con el proveedor de identidad externo.
// El proveedor y el directorio de usuarios son colaboradores externos; aquí solo
// viven sus contratos, el adaptador sobre UserRepository y el Bridge que alimenta
// al Holder de sesión.
package identity

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// Provider adaptador del proveedor de identidad para un usuario en sesión.
type Provider interface {
	// GetCurrentUser devuelve (nil, nil) si no hay usuario.
	GetCurrentUser(ctx context.Context) (*entity.User, error)
	// ObserveCurrentUser emite el usuario cada vez que cambia; nil = ya no existe.
	// El canal se cierra al cancelar ctx.
	ObserveCurrentUser(ctx context.Context) <-chan *entity.User
	RecordLastLogin(ctx context.Context, userID string) error
}

// Directory mutaciones administrativas sobre usuarios. La sesión solo consume
// el snapshot resultante, nunca llama a estos métodos.
type Directory interface {
	UpdateRole(ctx context.Context, userID string, role entity.Role) error
	SetActive(ctx context.Context, userID string, active bool) error
}
