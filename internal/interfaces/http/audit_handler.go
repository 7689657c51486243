package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
)

// AuditHandler expone la bitácora de auditoría (solo lectura).
type AuditHandler struct {
	db *memdb.DB
}

// NewAuditHandler construye el handler.
func NewAuditHandler(db *memdb.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// List bitácora completa, la más reciente primero.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.db.Auditorias())
}

// ListByTipo filtra por INSERT, UPDATE o DELETE.
func (h *AuditHandler) ListByTipo(c *fiber.Ctx) error {
	tipo := entity.TipoOperacion(c.Params("tipo"))
	switch tipo {
	case entity.OperacionInsert, entity.OperacionUpdate, entity.OperacionDelete:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "tipo de operación inválido"})
	}
	return c.JSON(h.db.AuditoriasByTipo(tipo))
}

// ListByEntidad filtra por entidad afectada.
func (h *AuditHandler) ListByEntidad(c *fiber.Ctx) error {
	return c.JSON(h.db.AuditoriasByEntidad(c.Params("entidad")))
}
