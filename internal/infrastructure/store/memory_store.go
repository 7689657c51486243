// Package store implementa el almacenamiento de la sesión del cliente.
package store

import (
	"sync"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore sesión en memoria del proceso.
type MemoryStore struct {
	mu      sync.RWMutex
	session entity.Session
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, nil
}

func (s *MemoryStore) Save(session entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = entity.Session{}
	return nil
}
