package rest

import (
	"context"
	"net/url"

	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo lectura de /auditorias.
type AuditRepo struct {
	api ports.APICaller
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(api ports.APICaller) *AuditRepo {
	return &AuditRepo{api: api}
}

func (r *AuditRepo) List(ctx context.Context) ([]entity.Auditoria, error) {
	return list[entity.Auditoria](ctx, r.api, "/auditorias")
}

func (r *AuditRepo) ListByTipo(ctx context.Context, tipo entity.TipoOperacion) ([]entity.Auditoria, error) {
	return list[entity.Auditoria](ctx, r.api, "/auditorias/tipo/"+url.PathEscape(string(tipo)))
}

func (r *AuditRepo) ListByEntidad(ctx context.Context, entidad string) ([]entity.Auditoria, error) {
	return list[entity.Auditoria](ctx, r.api, "/auditorias/entidad/"+url.PathEscape(entidad))
}
