package repository

import (
	"context"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// AuditRepository define el puerto de lectura de auditoría.
type AuditRepository interface {
	List(ctx context.Context) ([]entity.Auditoria, error)
	ListByTipo(ctx context.Context, tipo entity.TipoOperacion) ([]entity.Auditoria, error)
	ListByEntidad(ctx context.Context, entidad string) ([]entity.Auditoria, error)
}
