package http

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/application/session"
	"github.com/jhoicas/Nomina-api/internal/domain"
)

// Sessions resuelve el Holder de sesión de un usuario autenticado sobre el Registry,
// esperando (con límite) a que termine la carga cuando aún no hay usuario.
type Sessions struct {
	registry *session.Registry
	timeout  time.Duration
}

// NewSessions construye el resolvedor. timeout limita la espera de la carga.
func NewSessions(registry *session.Registry, timeout time.Duration) *Sessions {
	return &Sessions{registry: registry, timeout: timeout}
}

// Start abre la sesión y fuerza una carga nueva (login, POST /api/session/refresh).
func (s *Sessions) Start(ctx context.Context, userID string) (*session.Holder, session.Result) {
	h, _ := s.registry.Open(userID)
	return h, s.load(ctx, h)
}

// Resolve devuelve el Holder de userID. Si no hay usuario cargado lanza una carga
// (o espera la que está en curso) hasta timeout; el llamador lee el snapshot final.
func (s *Sessions) Resolve(ctx context.Context, userID string) *session.Holder {
	h, _ := s.registry.Open(userID)
	switch h.Snapshot().State {
	case session.StateLoaded:
	case session.StateLoading:
		s.awaitSettled(ctx, h)
	default:
		s.load(ctx, h)
	}
	return h
}

// End cierra la sesión (logout).
func (s *Sessions) End(userID string) {
	s.registry.Close(userID)
}

// load lanza un Refresh y espera su resultado. Si otra petición lo reemplazó
// (dos cargas simultáneas del mismo usuario), espera a la carga ganadora.
func (s *Sessions) load(ctx context.Context, h *session.Holder) session.Result {
	res := s.await(ctx, h.Refresh(s.registry.Context()))
	if res.Superseded {
		s.awaitSettled(ctx, h)
		res = session.Result{User: h.CurrentUser()}
		if res.User == nil {
			res.Err = domain.ErrNoSession
		}
	}
	return res
}

func (s *Sessions) await(ctx context.Context, done <-chan session.Result) session.Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return session.Result{Err: ctx.Err()}
	}
}

// awaitSettled espera a que la sesión salga de Loading.
func (s *Sessions) awaitSettled(ctx context.Context, h *session.Holder) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	snaps, stop := h.Subscribe()
	defer stop()
	for {
		select {
		case snap, ok := <-snaps:
			if !ok || snap.State != session.StateLoading {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
