package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/session"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// watchingSource fake con stream de observación controlado por el test.
type watchingSource struct {
	user    *entity.User
	updates chan *entity.User
}

func (w *watchingSource) CurrentUser(context.Context) (*entity.User, error) { return w.user, nil }
func (w *watchingSource) RecordLastLogin(context.Context, string) error    { return nil }

func (w *watchingSource) Watch(ctx context.Context, apply func(*entity.User)) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-w.updates:
			apply(u)
		}
	}
}

func TestRegistry_OpenDevuelveElMismoHolder(t *testing.T) {
	src := &watchingSource{user: admin("u1"), updates: make(chan *entity.User)}
	reg := session.NewRegistry(func(string) session.Bridge { return src }, zerolog.Nop())
	defer reg.Shutdown()

	h1, created := reg.Open("u1")
	assert.True(t, created)
	h2, created := reg.Open("u1")
	assert.False(t, created)
	assert.Same(t, h1, h2)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ObservacionActualizaLaSesion(t *testing.T) {
	src := &watchingSource{user: admin("u1"), updates: make(chan *entity.User)}
	reg := session.NewRegistry(func(string) session.Bridge { return src }, zerolog.Nop())
	defer reg.Shutdown()

	h, _ := reg.Open("u1")
	res := awaitResult(t, h.Refresh(reg.Context()))
	require.NoError(t, res.Err)

	demoted := admin("u1")
	demoted.Role = entity.RoleOperator
	src.updates <- demoted

	require.Eventually(t, func() bool {
		u := h.CurrentUser()
		return u != nil && u.Role == entity.RoleOperator
	}, waitTimeout, 10*time.Millisecond)
}

func TestRegistry_CloseLimpiaLaSesion(t *testing.T) {
	src := &watchingSource{user: admin("u1"), updates: make(chan *entity.User)}
	reg := session.NewRegistry(func(string) session.Bridge { return src }, zerolog.Nop())
	defer reg.Shutdown()

	h, _ := reg.Open("u1")
	awaitResult(t, h.Refresh(reg.Context()))

	reg.Close("u1")
	_, ok := reg.Get("u1")
	assert.False(t, ok)
	assert.Equal(t, session.StateUnloaded, h.Snapshot().State)
	assert.Equal(t, 0, reg.Len())
}
