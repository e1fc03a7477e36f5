// Package navigation traduce el estado de sesión y la política RBAC en
// decisiones para la capa de presentación: menú visible, permisos vigentes y
// guardas por ruta. No guarda decisiones: cada llamada lee el último snapshot.
package navigation

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/application/session"
	"github.com/jhoicas/Nomina-api/internal/domain/rbac"
)

// SnapshotSource lo que el Gate necesita del Holder de sesión.
type SnapshotSource interface {
	Snapshot() session.Snapshot
	Subscribe() (<-chan session.Snapshot, func())
}

// View proyección observable de la sesión para la UI.
type View struct {
	State       session.State
	Permissions []rbac.Permission
	Menu        []rbac.NavigationItem
	Version     uint64
}

// Gate árbitro de navegación sobre una sesión.
type Gate struct {
	source SnapshotSource
}

// NewGate construye el Gate. Es liviano y sin estado; se puede crear por petición.
func NewGate(source SnapshotSource) *Gate {
	return &Gate{source: source}
}

// MenuForCurrentUser menú permitido. Vacío si la sesión no está en Loaded.
func (g *Gate) MenuForCurrentUser() []rbac.NavigationItem {
	return ViewOf(g.source.Snapshot()).Menu
}

// PermissionsForCurrentUser permisos vigentes. Vacío si la sesión no está en Loaded.
func (g *Gate) PermissionsForCurrentUser() []rbac.Permission {
	return ViewOf(g.source.Snapshot()).Permissions
}

// Allowed evalúa la ruta contra el snapshot más reciente.
func (g *Gate) Allowed(route string) bool {
	snap := g.source.Snapshot()
	if !snap.Loaded() {
		return false
	}
	return rbac.CanAccessRoute(snap.User, route)
}

// Guard invoca exactamente una de las continuaciones y devuelve su error.
// Sesión ausente, en carga o fallida siempre va a onDenied.
func (g *Gate) Guard(route string, onAllowed, onDenied func() error) error {
	if g.Allowed(route) {
		return onAllowed()
	}
	return onDenied()
}

// Watch emite una View por cada transición de la sesión, en orden, empezando
// por la actual. El canal se cierra al cancelar ctx.
func (g *Gate) Watch(ctx context.Context) <-chan View {
	out := make(chan View)
	snaps, cancel := g.source.Subscribe()
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-snaps:
				if !ok {
					return
				}
				select {
				case out <- ViewOf(snap):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// ViewOf proyecta un snapshot: permisos y menú solo si hay usuario cargado.
func ViewOf(snap session.Snapshot) View {
	v := View{
		State:       snap.State,
		Permissions: []rbac.Permission{},
		Menu:        []rbac.NavigationItem{},
		Version:     snap.Version,
	}
	if !snap.Loaded() {
		return v
	}
	v.Permissions = rbac.Permissions(snap.User)
	v.Menu = rbac.AvailableNavigationItems(snap.User)
	return v
}
