package ports

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// StockReportData datos de entrada del reporte de existencias.
type StockReportData struct {
	GeneradoPor string
	Rol         entity.Rol
	Fecha       time.Time
	Umbral      int // stock menor al umbral se marca como bajo
	Bodegas     []entity.Bodega
	Productos   []entity.Producto
}

// StockReportGenerator define el puerto de salida para generar el reporte de existencias (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data StockReportData) ([]byte, error)
}
