package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

// AuditUseCase consulta el registro de auditoría (solo lectura).
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List devuelve todos los registros.
func (uc *AuditUseCase) List(ctx context.Context) ([]entity.Auditoria, error) {
	return uc.repo.List(ctx)
}

// ListByTipo filtra por tipo de operación (INSERT, UPDATE, DELETE).
func (uc *AuditUseCase) ListByTipo(ctx context.Context, tipo string) ([]entity.Auditoria, error) {
	op := entity.TipoOperacion(strings.ToUpper(strings.TrimSpace(tipo)))
	switch op {
	case entity.OperacionInsert, entity.OperacionUpdate, entity.OperacionDelete:
	default:
		return nil, &domain.ValidationError{Field: "tipo", Message: "Tipo de operación inválido: " + tipo}
	}
	return uc.repo.ListByTipo(ctx, op)
}

// ListByEntidad filtra por entidad afectada (ej. "Bodega", "Producto").
func (uc *AuditUseCase) ListByEntidad(ctx context.Context, entidad string) ([]entity.Auditoria, error) {
	entidad = strings.TrimSpace(entidad)
	if entidad == "" {
		return nil, &domain.ValidationError{Field: "entidad", Message: "La entidad es obligatoria"}
	}
	return uc.repo.ListByEntidad(ctx, entidad)
}
