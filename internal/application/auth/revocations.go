package auth

import (
	"sync"
	"time"
)

// Revocations lista en memoria de tokens cerrados por logout, indexada por jti.
// Cada entrada vive hasta el exp del token; después el propio JWT ya es inválido.
type Revocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewRevocations construye la lista vacía.
func NewRevocations() *Revocations {
	return &Revocations{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marca el token jti como cerrado hasta until.
func (r *Revocations) Revoke(jti string, until time.Time) {
	if jti == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.entries[jti] = until
}

// Revoked informa si el token jti fue cerrado y aún no expiró.
func (r *Revocations) Revoked(jti string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.entries[jti]
	return ok && r.now().Before(until)
}

// Len entradas vigentes.
func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	return len(r.entries)
}

func (r *Revocations) pruneLocked() {
	now := r.now()
	for jti, until := range r.entries {
		if !now.Before(until) {
			delete(r.entries, jti)
		}
	}
}
