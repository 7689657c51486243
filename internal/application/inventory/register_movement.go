package inventory

import (
	"strings"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// ValidateMovement aplica las reglas del formulario antes de cualquier llamada al backend.
// Los IDs en cero se tratan como "no seleccionado".
func ValidateMovement(in dto.RegistrarMovimientoInput) (entity.TipoMovimiento, error) {
	tipo := entity.TipoMovimiento(strings.ToUpper(strings.TrimSpace(in.Tipo)))
	if tipo == "" {
		return "", &domain.ValidationError{Field: "tipo", Message: "Selecciona tipo"}
	}
	if !tipo.Valid() {
		return "", &domain.ValidationError{Field: "tipo", Message: "Tipo de movimiento inválido: " + in.Tipo}
	}
	if in.ProductoID <= 0 {
		return "", &domain.ValidationError{Field: "producto", Message: "Selecciona producto"}
	}
	if in.Cantidad <= 0 {
		return "", &domain.ValidationError{Field: "cantidad", Message: "Cantidad inválida"}
	}
	switch tipo {
	case entity.MovimientoEntrada:
		if in.BodegaDestinoID <= 0 {
			return "", &domain.ValidationError{Field: "bodegaDestino", Message: "ENTRADA necesita destino"}
		}
	case entity.MovimientoSalida:
		if in.BodegaOrigenID <= 0 {
			return "", &domain.ValidationError{Field: "bodegaOrigen", Message: "SALIDA necesita origen"}
		}
	case entity.MovimientoTransferencia:
		if in.BodegaOrigenID <= 0 || in.BodegaDestinoID <= 0 {
			return "", &domain.ValidationError{Field: "bodegas", Message: "TRANSFERENCIA necesita ambos"}
		}
	}
	return tipo, nil
}

func optionalRef(id int) *entity.Ref {
	if id <= 0 {
		return nil
	}
	return &entity.Ref{ID: id}
}
