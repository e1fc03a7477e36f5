package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ Provider = (*RepositoryProvider)(nil)

// RepositoryProvider Provider ligado a un único usuario, respaldado por UserRepository.
// El usuario "actual" es el del token con el que se abrió la sesión.
type RepositoryProvider struct {
	userID string
	repo   repository.UserRepository
	feed   *ChangeFeed
	now    func() time.Time
}

// NewRepositoryProvider construye el proveedor para userID.
func NewRepositoryProvider(userID string, repo repository.UserRepository, feed *ChangeFeed) *RepositoryProvider {
	return &RepositoryProvider{userID: userID, repo: repo, feed: feed, now: time.Now}
}

// GetCurrentUser lee el usuario desde el repositorio.
func (p *RepositoryProvider) GetCurrentUser(ctx context.Context) (*entity.User, error) {
	u, err := p.repo.GetByID(ctx, p.userID)
	if err != nil {
		return nil, fmt.Errorf("identity: leer usuario %s: %w", p.userID, err)
	}
	return u, nil
}

// ObserveCurrentUser relee el usuario cada vez que el ChangeFeed anuncia un cambio.
// Los errores de lectura se omiten: el siguiente aviso o un Refresh explícito los corrige.
func (p *RepositoryProvider) ObserveCurrentUser(ctx context.Context) <-chan *entity.User {
	out := make(chan *entity.User)
	changes, cancel := p.feed.Subscribe(p.userID)
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
			}
			u, err := p.repo.GetByID(ctx, p.userID)
			if err != nil {
				continue
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// RecordLastLogin guarda la fecha de último acceso.
func (p *RepositoryProvider) RecordLastLogin(ctx context.Context, userID string) error {
	if err := p.repo.UpdateLastLogin(ctx, userID, p.now().UTC()); err != nil {
		return fmt.Errorf("identity: registrar último acceso: %w", err)
	}
	return nil
}
