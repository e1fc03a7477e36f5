package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/session"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del Bridge: cada llamada a CurrentUser espera una respuesta explícita del
// test, lo que permite resolver refrescos solapados en cualquier orden.
// ──────────────────────────────────────────────────────────────────────────────

const waitTimeout = 2 * time.Second

type reply struct {
	user *entity.User
	err  error
}

type call struct {
	ctx   context.Context
	reply chan reply
}

type fakeSource struct {
	calls        chan call
	lastLogins   chan string
	lastLoginErr error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls:      make(chan call, 8),
		lastLogins: make(chan string, 8),
	}
}

func (f *fakeSource) CurrentUser(ctx context.Context) (*entity.User, error) {
	c := call{ctx: ctx, reply: make(chan reply, 1)}
	f.calls <- c
	r := <-c.reply // ignora ctx a propósito: simula un resultado tardío
	return r.user, r.err
}

func (f *fakeSource) RecordLastLogin(_ context.Context, userID string) error {
	f.lastLogins <- userID
	return f.lastLoginErr
}

func (f *fakeSource) nextCall(t *testing.T) call {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(waitTimeout):
		t.Fatal("CurrentUser no fue invocado")
		return call{}
	}
}

func awaitResult(t *testing.T, ch <-chan session.Result) session.Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(waitTimeout):
		t.Fatal("Refresh no terminó")
		return session.Result{}
	}
}

func awaitSnapshot(t *testing.T, ch <-chan session.Snapshot) session.Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "canal de suscripción cerrado")
		return s
	case <-time.After(waitTimeout):
		t.Fatal("no llegó ningún snapshot")
		return session.Snapshot{}
	}
}

func admin(id string) *entity.User {
	return &entity.User{ID: id, Email: id + "@nomina.test", Role: entity.RoleAdmin, IsActive: true}
}

func newHolder(src *fakeSource) *session.Holder {
	return session.NewHolder(src, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────

func TestHolder_EstadoInicial(t *testing.T) {
	h := newHolder(newFakeSource())
	snap := h.Snapshot()
	assert.Equal(t, session.StateUninitialized, snap.State)
	assert.Nil(t, h.CurrentUser())
	assert.False(t, h.Loading())
}

func TestHolder_RefreshExitoso(t *testing.T) {
	src := newFakeSource()
	h := newHolder(src)

	done := h.Refresh(context.Background())
	c := src.nextCall(t)
	assert.True(t, h.Loading(), "mientras el proveedor responde la sesión está en Loading")
	assert.Nil(t, h.CurrentUser())

	c.reply <- reply{user: admin("u1")}
	res := awaitResult(t, done)

	require.NoError(t, res.Err)
	assert.False(t, res.Superseded)
	assert.Equal(t, "u1", res.User.ID)

	snap := h.Snapshot()
	assert.Equal(t, session.StateLoaded, snap.State)
	assert.True(t, snap.Loaded())
	assert.Equal(t, "u1", h.CurrentUser().ID)

	select {
	case id := <-src.lastLogins:
		assert.Equal(t, "u1", id)
	case <-time.After(waitTimeout):
		t.Fatal("no se registró el último acceso")
	}
}

func TestHolder_FalloDeUltimoAccesoNoAfectaLaSesion(t *testing.T) {
	src := newFakeSource()
	src.lastLoginErr = errors.New("timeout")
	h := newHolder(src)

	done := h.Refresh(context.Background())
	src.nextCall(t).reply <- reply{user: admin("u1")}
	res := awaitResult(t, done)
	require.NoError(t, res.Err)

	<-src.lastLogins
	assert.Equal(t, session.StateLoaded, h.Snapshot().State)
}

func TestHolder_FalloDelProveedorDejaUnloaded(t *testing.T) {
	src := newFakeSource()
	h := newHolder(src)

	done := h.Refresh(context.Background())
	src.nextCall(t).reply <- reply{err: errors.New("proveedor caído")}
	res := awaitResult(t, done)

	require.Error(t, res.Err)
	snap := h.Snapshot()
	assert.Equal(t, session.StateUnloaded, snap.State)
	assert.Contains(t, snap.Message, "proveedor caído")
	assert.Nil(t, snap.User)
	assert.Empty(t, src.lastLogins)
}

func TestHolder_SinUsuarioDejaUnloaded(t *testing.T) {
	src := newFakeSource()
	h := newHolder(src)

	done := h.Refresh(context.Background())
	src.nextCall(t).reply <- reply{}
	res := awaitResult(t, done)

	assert.ErrorIs(t, res.Err, domain.ErrNoSession)
	assert.Equal(t, session.StateUnloaded, h.Snapshot().State)
}

func TestHolder_RefrescosSolapados_GanaElSegundo(t *testing.T) {
	src := newFakeSource()
	h := newHolder(src)

	first := h.Refresh(context.Background())
	c1 := src.nextCall(t)
	second := h.Refresh(context.Background())
	c2 := src.nextCall(t)

	assert.Error(t, c1.ctx.Err(), "el refresh reemplazado debe cancelarse")

	c2.reply <- reply{user: admin("segundo")}
	res2 := awaitResult(t, second)
	require.NoError(t, res2.Err)

	// El primero resuelve tarde: no debe pisar el estado.
	c1.reply <- reply{user: admin("primero")}
	res1 := awaitResult(t, first)
	assert.True(t, res1.Superseded)

	assert.Equal(t, "segundo", h.CurrentUser().ID)
}

func TestHolder_ClearDescartaRefreshEnCurso(t *testing.T) {
	src := newFakeSource()
	h := newHolder(src)

	done := h.Refresh(context.Background())
	c := src.nextCall(t)

	h.Clear()
	assert.Equal(t, session.StateUnloaded, h.Snapshot().State)

	c.reply <- reply{user: admin("tarde")}
	res := awaitResult(t, done)
	assert.True(t, res.Superseded)
	assert.Equal(t, session.StateUnloaded, h.Snapshot().State)
	assert.Nil(t, h.CurrentUser())
}

func TestHolder_Apply(t *testing.T) {
	h := newHolder(newFakeSource())

	u := admin("u1")
	h.Apply(u)
	assert.Equal(t, "u1", h.CurrentUser().ID)

	u.Role = entity.RoleOperator
	assert.Equal(t, entity.RoleAdmin, h.CurrentUser().Role, "el Holder guarda una copia")

	h.Apply(nil)
	assert.Equal(t, session.StateUnloaded, h.Snapshot().State)
}

func TestHolder_SnapshotEsInmutable(t *testing.T) {
	h := newHolder(newFakeSource())
	h.Apply(admin("u1"))

	snap := h.Snapshot()
	snap.User.IsActive = false

	assert.True(t, h.CurrentUser().IsActive)
}

func TestHolder_SuscriptoresVenTransicionesEnOrden(t *testing.T) {
	src := newFakeSource()
	h := newHolder(src)

	ch, cancel := h.Subscribe()
	defer cancel()

	assert.Equal(t, session.StateUninitialized, awaitSnapshot(t, ch).State)

	done := h.Refresh(context.Background())
	src.nextCall(t).reply <- reply{user: admin("u1")}
	awaitResult(t, done)
	h.Clear()

	loading := awaitSnapshot(t, ch)
	loaded := awaitSnapshot(t, ch)
	cleared := awaitSnapshot(t, ch)

	assert.Equal(t, session.StateLoading, loading.State)
	assert.Equal(t, session.StateLoaded, loaded.State)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Equal(t, session.StateUnloaded, cleared.State)
	assert.Less(t, loading.Version, loaded.Version)
	assert.Less(t, loaded.Version, cleared.Version)
}

func TestHolder_VariosSuscriptores(t *testing.T) {
	h := newHolder(newFakeSource())

	a, cancelA := h.Subscribe()
	defer cancelA()
	b, cancelB := h.Subscribe()
	defer cancelB()

	h.Apply(admin("u1"))

	for _, ch := range []<-chan session.Snapshot{a, b} {
		assert.Equal(t, session.StateUninitialized, awaitSnapshot(t, ch).State)
		assert.Equal(t, session.StateLoaded, awaitSnapshot(t, ch).State)
	}
}

func TestHolder_CancelarSuscripcionCierraCanal(t *testing.T) {
	h := newHolder(newFakeSource())
	ch, cancel := h.Subscribe()
	awaitSnapshot(t, ch)

	cancel()
	cancel() // idempotente

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(waitTimeout):
		t.Fatal("el canal no se cerró")
	}
}

func TestHolder_CloseIgnoraOperacionesPosteriores(t *testing.T) {
	h := newHolder(newFakeSource())
	h.Apply(admin("u1"))
	h.Close()

	res := awaitResult(t, h.Refresh(context.Background()))
	assert.True(t, res.Superseded)
	h.Apply(nil)
	assert.Equal(t, session.StateLoaded, h.Snapshot().State)
}

func TestHolder_SuscribirseTrasCloseEntregaElSnapshotActual(t *testing.T) {
	h := newHolder(newFakeSource())
	h.Apply(admin("u1"))
	h.Close()

	for i := 0; i < 50; i++ {
		ch, cancel := h.Subscribe()
		snap := awaitSnapshot(t, ch)
		assert.Equal(t, session.StateLoaded, snap.State)

		select {
		case _, ok := <-ch:
			assert.False(t, ok, "tras el snapshot actual el canal se cierra")
		case <-time.After(waitTimeout):
			t.Fatal("el canal no se cerró")
		}
		cancel()
	}
}
