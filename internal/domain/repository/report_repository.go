package repository

import (
	"context"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
)

// ReportRepository define el puerto de lectura de reportes agregados del backend.
type ReportRepository interface {
	ResumenGeneral(ctx context.Context) (*dto.ResumenGeneral, error)
}
