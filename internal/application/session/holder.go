package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

const defaultLastLoginTimeout = 5 * time.Second

// Source lo que el Holder necesita del Auth/Session Bridge.
// CurrentUser nunca devuelve (nil, nil): "sin usuario" es un error.
type Source interface {
	CurrentUser(ctx context.Context) (*entity.User, error)
	RecordLastLogin(ctx context.Context, userID string) error
}

// Option configura un Holder.
type Option func(*Holder)

// WithLastLoginTimeout límite para el registro de último acceso (fire-and-forget).
func WithLastLoginTimeout(d time.Duration) Option {
	return func(h *Holder) {
		if d > 0 {
			h.lastLoginTimeout = d
		}
	}
}

// Holder única fuente de verdad del usuario actual.
//
// Concurrencia: un Refresh, Apply o Clear nuevo reemplaza al Refresh en curso
// (se cancela su contexto y su resultado tardío se descarta). Solo el último
// en completarse queda reflejado.
type Holder struct {
	source           Source
	log              zerolog.Logger
	lastLoginTimeout time.Duration

	mu     sync.Mutex
	snap   Snapshot
	gen    uint64
	cancel context.CancelFunc
	subs   map[*subscriber]struct{}
	closed bool
}

// NewHolder construye un Holder en estado Uninitialized.
func NewHolder(source Source, log zerolog.Logger, opts ...Option) *Holder {
	h := &Holder{
		source:           source,
		log:              log,
		lastLoginTimeout: defaultLastLoginTimeout,
		snap:             Snapshot{State: StateUninitialized},
		subs:             make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Refresh pasa a Loading y pide el usuario al Bridge en otra goroutine.
// El canal devuelto recibe exactamente un Result y luego se cierra; el llamador
// puede ignorarlo. ctx limita la consulta al proveedor.
func (h *Holder) Refresh(ctx context.Context) <-chan Result {
	done := make(chan Result, 1)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		done <- Result{Err: domain.ErrNoSession, Superseded: true}
		close(done)
		return done
	}
	gen := h.supersedeLocked()
	fetchCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.publishLocked(Snapshot{State: StateLoading})
	h.mu.Unlock()

	go func() {
		defer cancel()
		user, err := h.source.CurrentUser(fetchCtx)
		if err == nil && user == nil {
			err = domain.ErrNoSession
		}
		done <- h.complete(gen, user, err)
		close(done)
	}()
	return done
}

func (h *Holder) complete(gen uint64, user *entity.User, err error) Result {
	h.mu.Lock()
	if gen != h.gen {
		h.mu.Unlock()
		h.log.Debug().Uint64("gen", gen).Msg("refresh reemplazado, resultado descartado")
		return Result{Err: err, Superseded: true}
	}
	h.cancel = nil

	if err != nil {
		h.publishLocked(Snapshot{State: StateUnloaded, Message: err.Error()})
		h.mu.Unlock()
		h.log.Info().Err(err).Msg("sesión sin usuario")
		return Result{Err: err}
	}

	u := user.Clone()
	h.publishLocked(Snapshot{State: StateLoaded, User: u})
	h.mu.Unlock()

	go h.recordLastLogin(u.ID)
	return Result{User: u.Clone()}
}

// recordLastLogin es fire-and-forget: un fallo solo se registra en el log.
func (h *Holder) recordLastLogin(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.lastLoginTimeout)
	defer cancel()
	if err := h.source.RecordLastLogin(ctx, userID); err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo registrar el último acceso")
	}
}

// Clear fuerza Unloaded de forma síncrona (logout). Descarta cualquier Refresh en curso.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.supersedeLocked()
	h.publishLocked(Snapshot{State: StateUnloaded})
}

// Apply publica un usuario recibido por observación del proveedor.
// nil equivale a "el usuario ya no existe" y deja la sesión en Unloaded.
func (h *Holder) Apply(user *entity.User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.supersedeLocked()
	if user == nil {
		h.publishLocked(Snapshot{State: StateUnloaded, Message: domain.ErrNoSession.Error()})
		return
	}
	h.publishLocked(Snapshot{State: StateLoaded, User: user.Clone()})
}

// Snapshot devuelve una copia del estado actual.
func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap.clone()
}

// CurrentUser copia del usuario cargado, o nil si la sesión no está en Loaded.
func (h *Holder) CurrentUser() *entity.User {
	return h.Snapshot().User
}

// Loading informa si hay un Refresh en curso.
func (h *Holder) Loading() bool {
	return h.Snapshot().State == StateLoading
}

// Subscribe entrega el snapshot actual y luego cada transición, en orden.
// Sobre un Holder cerrado entrega solo el snapshot actual y cierra el canal.
// cancel libera la suscripción y cierra el canal.
func (h *Holder) Subscribe() (<-chan Snapshot, func()) {
	s := newSubscriber()

	h.mu.Lock()
	s.push(h.snap.clone())
	detached := h.closed
	if detached {
		s.finish()
	} else {
		h.subs[s] = struct{}{}
	}
	h.mu.Unlock()

	go s.run()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			_, registered := h.subs[s]
			delete(h.subs, s)
			h.mu.Unlock()
			if registered || detached {
				close(s.done)
			}
		})
	}
	return s.out, cancel
}

// Close cancela el Refresh en curso y cierra todas las suscripciones.
// Tras Close el Holder ignora nuevas operaciones.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.supersedeLocked()
	h.closed = true
	for s := range h.subs {
		close(s.done)
		delete(h.subs, s)
	}
}

func (h *Holder) supersedeLocked() uint64 {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.gen++
	return h.gen
}

func (h *Holder) publishLocked(s Snapshot) {
	s.Version = h.snap.Version + 1
	h.snap = s
	for sub := range h.subs {
		sub.push(s.clone())
	}
}
