package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

// ReportSession datos de la sesión que firman el reporte. Lo implementa *auth.Guard.
type ReportSession interface {
	Username() string
	Rol() entity.Rol
}

// ReportUseCase genera el reporte de existencias en PDF a partir de bodegas y productos
// y consulta el resumen general calculado por el backend.
type ReportUseCase struct {
	session       ReportSession
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	reportRepo    repository.ReportRepository
	generator     ports.StockReportGenerator
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	session ReportSession,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
	generator ports.StockReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		session:       session,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		reportRepo:    reportRepo,
		generator:     generator,
		now:           time.Now,
	}
}

// StockReport carga bodegas y productos y genera el PDF. Devuelve los bytes y el nombre sugerido.
func (uc *ReportUseCase) StockReport(ctx context.Context, umbral int) (pdfBytes []byte, filename string, err error) {
	if umbral <= 0 {
		return nil, "", &domain.ValidationError{Field: "umbral", Message: "El umbral debe ser mayor que cero"}
	}
	bodegas, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: bodegas: %w", err)
	}
	productos, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: productos: %w", err)
	}

	now := uc.now()
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, ports.StockReportData{
		GeneradoPor: uc.session.Username(),
		Rol:         uc.session.Rol(),
		Fecha:       now,
		Umbral:      umbral,
		Bodegas:     bodegas,
		Productos:   productos,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("reporte-stock-%s.pdf", now.Format("20060102-1504")), nil
}

// ResumenGeneral stock por bodega, productos más movidos, stock bajo y totales.
func (uc *ReportUseCase) ResumenGeneral(ctx context.Context) (*dto.ResumenGeneral, error) {
	r, err := uc.reportRepo.ResumenGeneral(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: resumen general: %w", err)
	}
	return r, nil
}
