package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
)

// ReportHandler reportes agregados calculados sobre la base en memoria.
type ReportHandler struct {
	db *memdb.DB
}

func NewReportHandler(db *memdb.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// ResumenGeneral GET /reportes/resumen-general
func (h *ReportHandler) ResumenGeneral(c *fiber.Ctx) error {
	return c.JSON(h.db.ResumenGeneral())
}
