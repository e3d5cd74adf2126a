package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// SessionRepository sesiones abiertas indexadas por ID (jti del token).
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository construye un almacén vacío.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]entity.Session)}
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

// Get devuelve la sesión o nil si no existe.
func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
