// Package session mantiene la única fuente de verdad sobre "quién es el usuario
// actual" con semántica explícita de carga:
//
//	Uninitialized → Loading → Loaded(user) | Unloaded(diagnóstico)
//
// El Holder es el único dueño del snapshot; el resto de componentes lo leen
// como valores inmutables (copia por cambio) o se suscriben a sus transiciones.
package session

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// State estado del ciclo de vida de la sesión.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateLoaded
	StateUnloaded
)

// String nombre estable del estado (se expone en la API).
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// Snapshot vista inmutable de la sesión en un instante.
// User solo es no-nil en StateLoaded; Message solo se llena cuando la carga falló.
type Snapshot struct {
	State   State
	User    *entity.User
	Message string
	Version uint64 // crece en cada transición publicada
}

// Loaded informa si hay un usuario cargado.
func (s Snapshot) Loaded() bool { return s.State == StateLoaded && s.User != nil }

func (s Snapshot) clone() Snapshot {
	s.User = s.User.Clone()
	return s
}

// Result desenlace de un Refresh. Superseded indica que otro Refresh, Apply o
// Clear posterior lo reemplazó y su resultado no se publicó.
type Result struct {
	User       *entity.User
	Err        error
	Superseded bool
}
