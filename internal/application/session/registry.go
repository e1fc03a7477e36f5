package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// Bridge fuente de usuario que además puede observar cambios (identity.Bridge).
type Bridge interface {
	Source
	Watch(ctx context.Context, apply func(*entity.User))
}

// BridgeFactory construye el Bridge ligado a un usuario.
type BridgeFactory func(userID string) Bridge

// Registry aloja un Holder por usuario autenticado en el servidor.
// Su ciclo de vida lo controla la raíz de composición (cmd/api).
type Registry struct {
	newBridge BridgeFactory
	log       zerolog.Logger
	opts      []Option

	baseCtx context.Context
	stopAll context.CancelFunc

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	holder *Holder
	stop   context.CancelFunc
}

// NewRegistry construye el registro. Los Holders creados reciben opts.
func NewRegistry(newBridge BridgeFactory, log zerolog.Logger, opts ...Option) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		newBridge: newBridge,
		log:       log,
		opts:      opts,
		baseCtx:   ctx,
		stopAll:   cancel,
		entries:   make(map[string]*entry),
	}
}

// Context contexto de vida del registro; los Refresh lanzados por el servidor
// lo usan para no cancelarse al terminar la petición HTTP.
func (r *Registry) Context() context.Context { return r.baseCtx }

// Open devuelve el Holder de userID, creándolo si no existe. created indica si
// se creó ahora (el llamador decide si lanzar Refresh). El bucle de observación
// del Bridge arranca con el Holder.
func (r *Registry) Open(userID string) (h *Holder, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[userID]; ok {
		return e.holder, false
	}

	bridge := r.newBridge(userID)
	holder := NewHolder(bridge, r.log.With().Str("user_id", userID).Logger(), r.opts...)
	ctx, stop := context.WithCancel(r.baseCtx)
	go bridge.Watch(ctx, holder.Apply)

	r.entries[userID] = &entry{holder: holder, stop: stop}
	r.log.Debug().Str("user_id", userID).Msg("sesión abierta")
	return holder, true
}

// Get devuelve el Holder de userID si existe.
func (r *Registry) Get(userID string) (*Holder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	return e.holder, true
}

// Close limpia y elimina la sesión de userID (logout).
func (r *Registry) Close(userID string) {
	r.mu.Lock()
	e, ok := r.entries[userID]
	delete(r.entries, userID)
	r.mu.Unlock()
	if !ok {
		return
	}
	e.stop()
	e.holder.Clear()
	e.holder.Close()
	r.log.Debug().Str("user_id", userID).Msg("sesión cerrada")
}

// Len número de sesiones abiertas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Shutdown cierra todas las sesiones.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	r.stopAll()
	for _, e := range entries {
		e.holder.Close()
	}
}
