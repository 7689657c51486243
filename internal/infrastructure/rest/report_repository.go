package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

const resumenGeneralPath = "/reportes/resumen-general"

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo lectura de /reportes.
type ReportRepo struct {
	api ports.APICaller
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(api ports.APICaller) *ReportRepo {
	return &ReportRepo{api: api}
}

// ResumenGeneral un cuerpo vacío es una respuesta mal formada; las listas ausentes quedan vacías.
func (r *ReportRepo) ResumenGeneral(ctx context.Context) (*dto.ResumenGeneral, error) {
	var out *dto.ResumenGeneral
	if err := call(ctx, r.api, http.MethodGet, resumenGeneralPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &domain.MalformedResponseError{Path: resumenGeneralPath, Err: errors.New("respuesta vacía")}
	}
	if out.StockPorBodega == nil {
		out.StockPorBodega = []dto.StockBodega{}
	}
	if out.ProductosMasMovidos == nil {
		out.ProductosMasMovidos = []dto.ProductoMovido{}
	}
	if out.ProductosStockBajo == nil {
		out.ProductosStockBajo = []dto.ProductoStockBajo{}
	}
	return out, nil
}
