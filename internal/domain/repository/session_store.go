package repository

import "github.com/jhoicas/gestion-bodegas/internal/domain/entity"

// SessionStore define el puerto de almacenamiento persistente de la sesión del cliente.
// Load devuelve una Session vacía (sin error) cuando no hay nada guardado.
// Clear es idempotente.
type SessionStore interface {
	Load() (entity.Session, error)
	Save(session entity.Session) error
	Clear() error
}
